package utils

import "github.com/google/uuid"

// UUIDGenerator produces time-ordered (version 7) identifiers for new rows.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new UUID v7, falling back to a random v4 when the
// clock sequence cannot be read.
func (g *UUIDGenerator) Generate() uuid.UUID {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}

	return v7
}
