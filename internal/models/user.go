package models

import "time"

// User represents a registered account.
type User struct {
	// ID is the unique identifier of the user.
	ID int64
	// Username is the unique login name.
	Username string
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string
	// CreatedAt is the timestamp indicating when the account was created.
	CreatedAt time.Time
}
