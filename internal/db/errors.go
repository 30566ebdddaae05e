package db

import "errors"

// ErrNotConfigured is returned when no DATABASE_URL was supplied.
var ErrNotConfigured = errors.New("database not configured")
