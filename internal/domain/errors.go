package domain

import (
	"errors"
	"fmt"
)

var (
	// A timestamp string did not match the expected layout.
	ErrParse = errors.New("parse error")
	// A route referenced an order, location or vehicle missing from the master tables.
	ErrDataIntegrity = errors.New("data integrity error")
	// The external matrix/route service was unreachable or returned non-success.
	ErrServiceUnavailable = errors.New("service unavailable")
	// The optimizer reported a failed or infeasible solve.
	ErrInfeasible = errors.New("infeasible solution")
)

// ParseError describes a single failed timestamp conversion.
type ParseError struct {
	Value  string
	Layout string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse timestamp %q with layout %q: %v", e.Value, e.Layout, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

// DataIntegrityError scopes an integrity failure to one vehicle's reconstruction.
type DataIntegrityError struct {
	VehicleIndex int
	Reason       string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("vehicle %d: %s", e.VehicleIndex, e.Reason)
}

func (e *DataIntegrityError) Unwrap() error { return ErrDataIntegrity }
