package uuid

import (
	google_uuid "github.com/google/uuid"
)

// UUID wraps google/uuid so that resource IDs can be bound from query
// parameters, where an absent ID must parse to Nil instead of failing
// the whole request (e.g. listing installments without a share
// filter).
type UUID struct {
	google_uuid.UUID
}

var Nil UUID

func New() UUID {
	return UUID{google_uuid.New()}
}

func NewString() string {
	return google_uuid.NewString()
}

// UnmarshalParam implements the uuid.Parse method
// from https://pkg.go.dev/github.com/google/uuid#Parse
// for UUID
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, e := google_uuid.Parse(p)
	if e != nil {
		return e
	}

	*u = UUID{parsed}
	return nil
}
