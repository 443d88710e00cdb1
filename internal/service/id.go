package service

import "github.com/google/uuid"

// newID returns a time-ordered UUID so record listings sorted by ID roughly
// follow creation order, falling back to a random one if v7 generation
// fails.
func newID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
