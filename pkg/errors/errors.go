// Package errors provides common domain error types for chatlens.
//
// This package defines sentinel errors for the failure modes of transcript
// acquisition. Only total unavailability of the input is an error: a
// transcript that parses to zero records is a valid empty result, and
// individual malformed lines are dropped silently by the parser.
//
// Usage:
//
//	import clerrors "github.com/chatlens/chatlens/pkg/errors"
//
//	// Return a domain error
//	return "", fmt.Errorf("%w: %s", clerrors.ErrNoTranscript, path)
//
//	// Check for domain errors
//	if clerrors.IsNoTranscript(err) {
//	    // handle missing transcript case
//	}
package errors

import "errors"

var (
	// ErrSourceUnavailable indicates the export file could not be read
	// (missing file, permission denied, unreadable archive).
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrUndecodable indicates the export file could not be decoded to
	// valid UTF-8 text.
	ErrUndecodable = errors.New("undecodable text")

	// ErrNoTranscript indicates a zip export contained no transcript
	// text file.
	ErrNoTranscript = errors.New("no transcript in export")

	// ErrInvalidConfig indicates the configuration failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// IsSourceUnavailable reports whether any error in err's chain is ErrSourceUnavailable.
func IsSourceUnavailable(err error) bool {
	return errors.Is(err, ErrSourceUnavailable)
}

// IsUndecodable reports whether any error in err's chain is ErrUndecodable.
func IsUndecodable(err error) bool {
	return errors.Is(err, ErrUndecodable)
}

// IsNoTranscript reports whether any error in err's chain is ErrNoTranscript.
func IsNoTranscript(err error) bool {
	return errors.Is(err, ErrNoTranscript)
}

// IsInvalidConfig reports whether any error in err's chain is ErrInvalidConfig.
func IsInvalidConfig(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}
