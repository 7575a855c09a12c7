package service

import "errors"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrForbidden          = errors.New("insufficient role or ownership")
	ErrInvalidRole        = errors.New("invalid role")
	ErrSelfRoleChange     = errors.New("cannot change your own role")
	ErrSlugTaken          = errors.New("slug already in use")
)
