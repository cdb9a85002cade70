package stage

import "errors"

var (
	ErrNoCanvas       = errors.New("stage: canvas option shall be set")
	ErrNoHost         = errors.New("stage: no host to drive frames")
	ErrAlreadyStarted = errors.New("stage: manager already started")
)
