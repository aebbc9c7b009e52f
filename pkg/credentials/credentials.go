package credentials

// Context type labels.
const (
	TypeAll  = "all"
	TypeHTTP = "http"
	TypeRPC  = "rpc"
	TypeNATS = "nats"
)

// Context is an opaque caller context.
type Context interface {
	Type() string
}

// Extractor reads credentials from contexts it supports.
type Extractor interface {
	Supports(c Context) bool
	UserIdentifier(c Context) string
	Token(c Context) string
}

// Func builds an Extractor from functions. A nil SupportsFunc accepts every
// context.
type Func struct {
	SupportsFunc func(c Context) bool
	UserFunc     func(c Context) string
	TokenFunc    func(c Context) string
}

var _ Extractor = (*Func)(nil)

func (f *Func) Supports(c Context) bool {
	if f.SupportsFunc == nil {
		return true
	}
	return f.SupportsFunc(c)
}

func (f *Func) UserIdentifier(c Context) string {
	if f.UserFunc == nil {
		return ""
	}
	return f.UserFunc(c)
}

func (f *Func) Token(c Context) string {
	if f.TokenFunc == nil {
		return ""
	}
	return f.TokenFunc(c)
}

// Static is a Context with a fixed type, handy for custom transports and
// tests.
type Static string

func (s Static) Type() string {
	return string(s)
}
