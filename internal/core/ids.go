package core

import "github.com/google/uuid"

// IDGenerator hands out entity ids. Month-based project ids are derived from
// their period and never come from here.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator produces random UUIDv4 ids.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }

// IDFunc adapts a plain function to IDGenerator.
type IDFunc func() string

func (f IDFunc) NewID() string { return f() }
