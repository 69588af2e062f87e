package credentials

import "errors"

var (
	// ErrHashing means the hashing primitive could not run (for example,
	// unusable cost parameters). Identity creation must abort.
	ErrHashing = errors.New("password hashing unavailable")

	// ErrEmptySalt is a programmer error: every identity has a salt.
	ErrEmptySalt = errors.New("empty salt")
)
