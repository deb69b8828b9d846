package database

import "errors"

var (
	// ErrUserExists is returned when an attempt is made to register
	// a user with a username that is already taken.
	ErrUserExists = errors.New("user exists")
	// ErrUserNotFound is returned when an attempt is made to retrieve
	// a user that doesn't exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrCookieNotFound is returned when an attempt is made to access
	// a cookie record that doesn't exist or is owned by another user.
	ErrCookieNotFound = errors.New("cookie not found")
)
