package urlnorm

import "errors"

// Failure kinds returned by this package. Returned errors wrap one of these
// with detail about the offending input; branch on them with errors.Is.
var (
	// ErrInvalidURL is returned by New when the input cannot be decomposed
	// into URL components.
	ErrInvalidURL = errors.New("invalid url")

	// ErrInvalidPattern is returned by Normalize when an exclude pattern is
	// not a valid regular expression.
	ErrInvalidPattern = errors.New("invalid exclude pattern")
)
