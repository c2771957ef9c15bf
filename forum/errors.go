package forum

import "errors"

// Engine failures controllers map onto HTTP statuses.
var (
	ErrEmptyContent   = errors.New("content cannot be empty")
	ErrPostNotFound   = errors.New("post not found")
	ErrParentNotFound = errors.New("parent comment not found")
	ErrInvalidRole    = errors.New("unknown author role")
)
