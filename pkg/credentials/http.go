package credentials

import (
	"net/http"
	"strings"
)

// Default HTTP header names.
const (
	DefaultTokenHeader = "X-MFA-Token"
	DefaultUserHeader  = "X-User-ID"
)

// HTTPContext wraps an incoming request.
type HTTPContext struct {
	Request *http.Request
}

// NewHTTPContext wraps r.
func NewHTTPContext(r *http.Request) *HTTPContext {
	return &HTTPContext{Request: r}
}

func (*HTTPContext) Type() string {
	return TypeHTTP
}

// HTTPExtractor reads the token from a header and the user from a header
// or from UserFunc, e.g. a session lookup.
type HTTPExtractor struct {
	TokenHeader string
	UserHeader  string
	UserFunc    func(r *http.Request) string
}

var _ Extractor = (*HTTPExtractor)(nil)

// NewHTTPExtractor uses DefaultTokenHeader and DefaultUserHeader.
func NewHTTPExtractor() *HTTPExtractor {
	return &HTTPExtractor{
		TokenHeader: DefaultTokenHeader,
		UserHeader:  DefaultUserHeader,
	}
}

func (e *HTTPExtractor) request(c Context) *http.Request {
	hc, ok := c.(*HTTPContext)
	if !ok || hc == nil {
		return nil
	}
	return hc.Request
}

// Supports accepts HTTP contexts carrying a token header.
func (e *HTTPExtractor) Supports(c Context) bool {
	r := e.request(c)
	return r != nil && strings.TrimSpace(r.Header.Get(e.TokenHeader)) != ""
}

func (e *HTTPExtractor) UserIdentifier(c Context) string {
	r := e.request(c)
	if r == nil {
		return ""
	}
	if e.UserFunc != nil {
		return e.UserFunc(r)
	}
	return strings.TrimSpace(r.Header.Get(e.UserHeader))
}

func (e *HTTPExtractor) Token(c Context) string {
	r := e.request(c)
	if r == nil {
		return ""
	}
	return strings.TrimSpace(r.Header.Get(e.TokenHeader))
}
