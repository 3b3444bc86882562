package errors

import "errors"

// ErrMissingParentCA is returned when a parent domain lacks complete
// Root/Intermediate CA material.
var ErrMissingParentCA = errors.New("parent domain is missing CA material")

// ErrMissingIntermediateCA is returned when a host certificate is requested
// without a usable Intermediate CA.
var ErrMissingIntermediateCA = errors.New("intermediate CA is missing")

// ErrMissingHostname is returned in non-interactive mode when a hostname is
// required but was not provided.
var ErrMissingHostname = errors.New("hostname is required")

// ErrSigningFailure is returned when an underlying cryptographic operation fails.
var ErrSigningFailure = errors.New("signing failure")

// ErrFileSystem is returned when a directory or file could not be created.
var ErrFileSystem = errors.New("filesystem error")
