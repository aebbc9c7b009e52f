package credentials

import "errors"

var (
	ErrRegistryFrozen = errors.New("credentials: registry is frozen")
	ErrNilExtractor   = errors.New("credentials: extractor is nil")
)
