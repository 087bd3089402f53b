package utils

import "github.com/google/uuid"

// TraceIDGenerator produces request trace ids. Version 7 ids are preferred
// since they sort by creation time; a random v4 id is the fallback.
type TraceIDGenerator struct{}

func NewTraceIDGenerator() *TraceIDGenerator {
	return &TraceIDGenerator{}
}

func (g *TraceIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
