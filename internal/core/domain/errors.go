package domain

import "errors"

var (
	ErrMissingUserID   = errors.New("user id is required")
	ErrInvalidScore    = errors.New("score must be an integer between 0 and 100")
	ErrInvalidQuery    = errors.New("question is required")
	ErrUserNotFound    = errors.New("user not found")
	ErrRoadmapNotFound = errors.New("roadmap not found")
	ErrForbidden       = errors.New("access forbidden")
)
