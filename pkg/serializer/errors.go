package serializer

import "errors"

var (
	ErrMarshalFailed   = errors.New("failed to serialize value")
	ErrUnmarshalFailed = errors.New("failed to deserialize value")
	ErrInvalidTarget   = errors.New("deserialization target must be a non-nil pointer")
)
