package repository

import "github.com/rpggio/teamboard/internal/repository/repoerr"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = repoerr.ErrNotFound

	// ErrDuplicate is returned when a unique constraint fails
	ErrDuplicate = repoerr.ErrDuplicate

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = repoerr.ErrInvalidInput
)
