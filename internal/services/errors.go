// Package services defines the business logic for chat conversations and
// lead capture. This file centralizes common service-level error values so
// that they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer.
package services

import "errors"

var (
	// ErrSessionNotFound indicates that the requested chat session does
	// not exist.
	ErrSessionNotFound = errors.New("session not found")

	// ErrEmptyMessage is returned when a chat turn contains an empty
	// message.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrTooLong is returned when a chat message exceeds the maximum
	// configured length limit.
	ErrTooLong = errors.New("message too long")

	// ErrInvalidSource is returned when a lead names a source outside the
	// allowed set.
	ErrInvalidSource = errors.New("invalid lead source")
)
