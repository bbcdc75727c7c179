package service

import "errors"

var (
	// ErrNotFound is returned when a list or task does not exist remotely.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous is returned when a list name matches more than one list.
	ErrAmbiguous = errors.New("ambiguous")

	// ErrAuth is returned when credentials are missing, expired or revoked.
	ErrAuth = errors.New("auth error")
)
