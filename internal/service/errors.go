package service

import "errors"

var (
	// ErrGameNotFound maps to 404 on the HTTP boundary.
	ErrGameNotFound = errors.New("game not found")

	// ErrInvalidCredentials is returned for every login failure so the
	// response never reveals whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid admin credentials")

	// ErrInternalServer hides infrastructure errors from clients.
	ErrInternalServer = errors.New("internal server error")
)
