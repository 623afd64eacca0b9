package model

import "time"

// DenominationSet is a versioned list of denominations.
// At most one set is active; it supplies the defaults for requests that omit denominations.
// Versions come from one sequence shared by all sets, so every create or
// update gets a version no other set has.
type DenominationSet struct {
	ID            string    `json:"id"`
	Denominations []int     `json:"denominations"`
	Active        bool      `json:"active"`
	Version       int       `json:"version"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	CreatedBy     string    `json:"created_by,omitempty"`
	UpdatedBy     string    `json:"updated_by,omitempty"`
}
