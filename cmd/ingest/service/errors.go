package service

import "errors"

var (
	// ErrMissingInput is returned when a required field or file payload
	// is absent. Checked before any I/O, so it never needs compensation.
	ErrMissingInput = errors.New("missing required input")

	// ErrUploadFailed is returned when an object store write fails
	ErrUploadFailed = errors.New("failed to upload file to storage")
)
