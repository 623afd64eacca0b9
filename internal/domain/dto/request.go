// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs decouple the HTTP layer from the domain model and carry request
// validation. Binding tags are evaluated by gin; Validate covers the rules
// binding tags cannot express.
package dto

import "fmt"

// EnumerateRequest is the JSON body of POST /api/combinations.
//
// Target is a pointer so that an explicit zero (which has exactly one,
// empty, combination) can be told apart from a missing field.
// Denominations is optional; when empty the active denomination set is used.
//
// @Description Request to enumerate every combination of denominations summing to a target
// @Example {"denominations": [1, 2], "target": 3}
type EnumerateRequest struct {
	// Denominations are used in the given order. Each must be positive.
	Denominations []int `json:"denominations" example:"1,2"`
	// Target is the exact sum every combination must reach.
	Target *int `json:"target" binding:"required" example:"3" minimum:"0"`
	// Limit caps the number of combinations returned. 0 means the server maximum.
	Limit int `json:"limit,omitempty" example:"100" minimum:"0"`
} // @name EnumerateRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var (
	// ErrTargetRequired is returned when target is missing.
	ErrTargetRequired = &ValidationError{Field: "target", Message: "is required"}
	// ErrNegativeTarget is returned when target is below zero.
	ErrNegativeTarget = &ValidationError{Field: "target", Message: "must not be negative"}
	// ErrNegativeLimit is returned when limit is below zero.
	ErrNegativeLimit = &ValidationError{Field: "limit", Message: "must not be negative"}
	// ErrDenominationsRequired is returned when a denomination update carries no values.
	ErrDenominationsRequired = &ValidationError{Field: "denominations", Message: "must contain at least one value"}
)

// Validate performs custom validation on the request.
func (r *EnumerateRequest) Validate() error {
	if r.Target == nil {
		return ErrTargetRequired
	}
	if *r.Target < 0 {
		return ErrNegativeTarget
	}
	if r.Limit < 0 {
		return ErrNegativeLimit
	}
	return validateDenominations(r.Denominations)
}

// TargetValue returns the target, or zero when it is missing.
func (r *EnumerateRequest) TargetValue() int {
	if r.Target == nil {
		return 0
	}
	return *r.Target
}

// UpdateDenominationsRequest is the JSON body of PUT /api/denominations.
type UpdateDenominationsRequest struct {
	// Denominations becomes the new active set.
	Denominations []int `json:"denominations" binding:"required,min=1" example:"1,2,5"`
	// CreatedBy identifies who created this set.
	CreatedBy string `json:"created_by,omitempty"`
} // @name UpdateDenominationsRequest

// Validate performs custom validation on the request.
func (r *UpdateDenominationsRequest) Validate() error {
	if len(r.Denominations) == 0 {
		return ErrDenominationsRequired
	}
	return validateDenominations(r.Denominations)
}

func validateDenominations(denominations []int) error {
	for i, d := range denominations {
		if d <= 0 {
			return &ValidationError{
				Field:   fmt.Sprintf("denominations[%d]", i),
				Message: "must be a positive integer",
			}
		}
	}
	return nil
}
