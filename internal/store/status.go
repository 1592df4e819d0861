// Package store holds the in-memory entity state: one slice per
// entity type, each pairing a collection with a fetch status machine,
// plus the derived financial summary embedded in the transaction
// slice.
package store

import "time"

// Status is the fetch lifecycle of a slice. Mutations never touch it;
// only the fetch thunk drives transitions.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Clock supplies the reference time for summary recomputation. Tests
// pin it; production uses SystemClock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }
