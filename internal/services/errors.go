package services

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNotReady        = errors.New("profile name and search keywords are required")
	ErrRunInProgress   = errors.New("a run is already in progress")
	ErrIndexOutOfRange = errors.New("entry index out of range")
	ErrUnknownField    = errors.New("unknown field")
)
