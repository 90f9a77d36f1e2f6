package repository

import "errors"

// Storage outcomes shared by every repository implementation.
// Implementations translate their backend's native errors (pgx row
// scans, unique violations, missing map keys) into these so callers
// can discriminate with errors.Is instead of matching message text.
var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("record already exists")
	ErrForeignKey = errors.New("referenced record does not exist")
)
