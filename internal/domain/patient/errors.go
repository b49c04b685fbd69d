package patient

import "errors"

var (
	ErrInvalidSeverity     = errors.New("invalid severity filter")
	ErrInvalidRegisteredBy = errors.New("invalid registeredBy filter")
)
