package kv

import "errors"

var (
	ErrEmptyKey = errors.New("kv: empty key")
	ErrClosed   = errors.New("kv: store is closed")
)
