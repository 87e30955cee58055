package models

import "errors"

// Application-wide standard errors
var (
	// User-recoverable gameplay errors
	ErrSessionNotFound   = errors.New("game session not found")
	ErrInvalidChoice     = errors.New("choice is not available at the current node")
	ErrNothingToRollback = errors.New("no choice to roll back")
	ErrPathNotFound      = errors.New("story path not found")

	// Content-integrity errors. These indicate authoring defects and must be
	// caught by validation before content ships, never by players.
	ErrNodeNotFound = errors.New("story node not found")
	ErrBrokenGraph  = errors.New("choice target does not exist in the story graph")

	// General request/server errors
	ErrInternalServer = errors.New("internal server error")
	ErrBadRequest     = errors.New("bad request")
)
