// Package igor provides a pure Go reader for Igor Pro packed experiment
// (.pxp) archives.
package igor

import "errors"

// Common errors. Every decode error is fatal: a truncated or malformed
// archive cannot be partially trusted, so Load and LoadBytes never return a
// partial tree.
var (
	ErrTruncatedHeader             = errors.New("truncated record header")
	ErrTruncatedPayload            = errors.New("record payload extends past end of archive")
	ErrTruncatedWave               = errors.New("truncated wave record")
	ErrTruncatedVariables          = errors.New("truncated variables record")
	ErrUnsupportedWaveVersion      = errors.New("unsupported wave version")
	ErrUnsupportedVariablesVersion = errors.New("unsupported variables record version")
	ErrUnbalancedFolders           = errors.New("folder start/end records do not match")
	ErrNotFound                    = errors.New("record not found")
)
