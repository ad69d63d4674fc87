package sample

import "errors"

var (
	// ErrAlreadyLoaded is returned when an identity is registered twice
	ErrAlreadyLoaded = errors.New("sample already loaded")

	// ErrUnknownHandle indicates a handle that does not belong to the store
	ErrUnknownHandle = errors.New("unknown sample handle")

	// ErrEmptyIdentity is returned for a blank sample identity
	ErrEmptyIdentity = errors.New("empty sample identity")

	ErrNoSample = errors.New("decoder returned no sample")
)
