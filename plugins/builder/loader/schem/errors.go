package schem

import (
	"errors"
	"fmt"
)

var (
	ErrIO             = errors.New("schem: cannot read file")
	ErrDecompression  = errors.New("schem: corrupt compressed stream")
	ErrTruncatedInput = errors.New("schem: truncated input")
	ErrMalformedTag   = errors.New("schem: malformed tag")
	// ErrNegativeDimension is a malformed-tag error for a Width, Height or Length below zero.
	ErrNegativeDimension = fmt.Errorf("%w: negative dimension", ErrMalformedTag)
	// ErrMissingRequiredFields is reported by Check for a volume decoded without
	// a palette or block data. Load itself tolerates such files.
	ErrMissingRequiredFields = errors.New("schem: missing palette or block data")
)
