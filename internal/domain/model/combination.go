// Package model defines the core domain entities for the combination service.
package model

import "github.com/guttosm/combination-service/internal/combination"

// Combination is one ordered pick of denominations summing to a target.
//
// @Description Denominations picked, in discovery order
// @Example [1, 1, 2]
type Combination []int

// Sum returns the total value of the combination.
func (c Combination) Sum() int {
	return combination.Sum(c)
}

// String renders the combination as space-separated integers.
func (c Combination) String() string {
	return combination.Format(c)
}

// EnumerationResult represents the complete result of an enumeration.
//
// @Description Every combination of the denominations that sums exactly to the target
// @Example {"denominations": [1, 2], "target": 3, "count": 2, "combinations": [[1, 1, 1], [1, 2]], "truncated": false}
type EnumerationResult struct {
	// Denominations is the list the search ran over, in search order
	Denominations []int `json:"denominations" example:"1,2"`
	// Target is the sum each combination reaches
	Target int `json:"target" example:"3"`
	// Count is the number of combinations returned
	Count int `json:"count" example:"2"`
	// Combinations are listed in discovery order
	Combinations []Combination `json:"combinations"`
	// Truncated reports that the search stopped at the result limit
	Truncated bool `json:"truncated"`
}

// Empty returns an EnumerationResult with no combinations.
func Empty(denominations []int, target int) EnumerationResult {
	return EnumerationResult{
		Denominations: denominations,
		Target:        target,
		Count:         0,
		Combinations:  []Combination{},
	}
}

// Add appends a combination and keeps Count in step.
func (r *EnumerationResult) Add(c []int) {
	r.Combinations = append(r.Combinations, Combination(c))
	r.Count = len(r.Combinations)
}

// StreamSummary describes a finished streaming enumeration.
type StreamSummary struct {
	Count     int  `json:"count"`
	Truncated bool `json:"truncated"`
}
