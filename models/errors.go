package models

import "errors"

// Domain failure kinds. Handlers match these with errors.Is and
// translate them into user-facing notices or error pages; none of
// them is retried.
var (
	// ErrUnknownUser: login attempt for a username that does not exist.
	ErrUnknownUser = errors.New("unknown username")

	// ErrWrongPassword: username exists but the hash comparison failed.
	ErrWrongPassword = errors.New("wrong password")

	// ErrTaskNotFound: the referenced task id has no row.
	ErrTaskNotFound = errors.New("task not found")

	// ErrNotOwner: the task exists but belongs to another user.
	ErrNotOwner = errors.New("task owned by another user")
)
