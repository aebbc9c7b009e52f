package store

import "errors"

var (
	ErrReadFailed   = errors.New("store: failed to read value")
	ErrWriteFailed  = errors.New("store: failed to write value")
	ErrDeleteFailed = errors.New("store: failed to delete value")
)
