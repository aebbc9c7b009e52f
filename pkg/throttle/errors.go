package throttle

import "errors"

var (
	ErrInvalidConfig     = errors.New("throttle: invalid configuration")
	ErrInvalidTokenCount = errors.New("throttle: token count must be positive")
)
