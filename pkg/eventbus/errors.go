package eventbus

import "errors"

var (
	ErrPublishFailed = errors.New("eventbus: failed to publish event")
	ErrEncodeFailed  = errors.New("eventbus: failed to encode event")
	ErrHandlerPanic  = errors.New("eventbus: handler panicked")
)
