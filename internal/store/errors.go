package store

import "github.com/literahq/litera-server/internal/errors"

// Sentinel errors returned by store operations. These alias the shared
// domain sentinels so callers can match with errors.Is either way.
var (
	ErrNotFound      = errors.ErrNotFound
	ErrAlreadyExists = errors.ErrAlreadyExists
)
