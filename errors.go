package rrect

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by DomainError through errors.Is.
var (
	// ErrInvalidDimension is returned for a non-positive pixel size or
	// degenerate bounds.
	ErrInvalidDimension = errors.New("rrect: invalid dimension")

	// ErrInvalidRadius is returned for a negative or non-finite radius, or
	// one that exceeds half the shorter side under RadiusReject.
	ErrInvalidRadius = errors.New("rrect: invalid radius")
)

// ErrorKind classifies a DomainError.
type ErrorKind int

// Error kinds.
const (
	InvalidDimension ErrorKind = iota + 1
	InvalidRadius
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case InvalidDimension:
		return "InvalidDimension"
	case InvalidRadius:
		return "InvalidRadius"
	default:
		return "Unknown"
	}
}

// DomainError reports an input that lies outside the domain of Generate.
// No geometry is produced when it is returned.
type DomainError struct {
	Kind   ErrorKind
	Field  string
	Value  float64
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("rrect: %s: %s=%g %s", e.Kind, e.Field, e.Value, e.Reason)
}

// Is reports whether target is the sentinel for e.Kind.
func (e *DomainError) Is(target error) bool {
	switch e.Kind {
	case InvalidDimension:
		return target == ErrInvalidDimension
	case InvalidRadius:
		return target == ErrInvalidRadius
	}
	return false
}

func dimensionError(field string, value float64, reason string) error {
	return &DomainError{Kind: InvalidDimension, Field: field, Value: value, Reason: reason}
}

func radiusError(c Corner, value float64, reason string) error {
	return &DomainError{Kind: InvalidRadius, Field: c.String(), Value: value, Reason: reason}
}
