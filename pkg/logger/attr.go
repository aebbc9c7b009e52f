package logger

import (
	"log/slog"
	"strconv"
)

// Errors groups non-nil errors under "errors".
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under "error". Nil errors produce an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the user identifier under "user_id".
func UserID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("user_id", id)
}

// Component records the component name under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records a domain event name under "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Namespace records a storage namespace under "namespace".
func Namespace(ns string) slog.Attr {
	return slog.String("namespace", ns)
}

// TokenType records the requested token type under "token_type".
func TokenType(t string) slog.Attr {
	return slog.String("token_type", t)
}

// ImageFormat records an image MIME type under "image_format".
func ImageFormat(f string) slog.Attr {
	return slog.String("image_format", f)
}

// ContextType records a credential context type under "context_type".
func ContextType(t string) slog.Attr {
	return slog.String("context_type", t)
}

// Count records a quantity under "count".
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}
