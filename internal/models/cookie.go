package models

import "time"

// Validity is the validation state of a stored cookie. A cookie that has
// never been checked is ValidityUnknown; validation moves it to
// ValidityValid or ValidityInvalid.
type Validity int

const (
	ValidityUnknown Validity = iota
	ValidityValid
	ValidityInvalid
)

// Bool returns the validity as a nullable boolean: nil for unknown,
// otherwise whether the cookie is valid. Used for JSON and database mapping.
func (v Validity) Bool() *bool {
	switch v {
	case ValidityValid:
		b := true
		return &b
	case ValidityInvalid:
		b := false
		return &b
	default:
		return nil
	}
}

// ValidityFromBool converts a nullable boolean into a Validity.
func ValidityFromBool(b *bool) Validity {
	switch {
	case b == nil:
		return ValidityUnknown
	case *b:
		return ValidityValid
	default:
		return ValidityInvalid
	}
}

// Cookie represents a stored cookie record owned by a single user.
type Cookie struct {
	// ID is the unique identifier of the record, assigned at creation.
	ID string
	// UserID identifies the owner of the record. Records are never shared.
	UserID int64
	// Website is the site label the user supplied when uploading.
	Website string
	// Name is the cookie's name.
	Name string
	// Value is the cookie's value.
	Value string
	// Domain is the optional domain attribute of the cookie.
	Domain string
	// Path is the optional path attribute of the cookie.
	Path string
	// Expires is the optional expiry timestamp. Nil means session-scoped.
	Expires *time.Time
	// Validity is the result of the most recent validation attempt.
	Validity Validity
	// LastValidated is the timestamp of the most recent validation attempt.
	// Nil until the record has been validated at least once.
	LastValidated *time.Time
	// CreatedAt is the timestamp indicating when the record was created.
	CreatedAt time.Time
}
