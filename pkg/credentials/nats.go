package credentials

import (
	"strings"

	"github.com/nats-io/nats.go"
)

// Default NATS header names.
const (
	DefaultTokenNATSHeader = "Mfa-Token"
	DefaultUserNATSHeader  = "User-Id"
)

// NATSContext wraps a received NATS message.
type NATSContext struct {
	Msg *nats.Msg
}

// NewNATSContext wraps msg.
func NewNATSContext(msg *nats.Msg) *NATSContext {
	return &NATSContext{Msg: msg}
}

func (*NATSContext) Type() string {
	return TypeNATS
}

// NATSHeaderExtractor reads credentials from message headers.
type NATSHeaderExtractor struct {
	TokenHeader string
	UserHeader  string
}

var _ Extractor = (*NATSHeaderExtractor)(nil)

// NewNATSHeaderExtractor uses the default header names.
func NewNATSHeaderExtractor() *NATSHeaderExtractor {
	return &NATSHeaderExtractor{
		TokenHeader: DefaultTokenNATSHeader,
		UserHeader:  DefaultUserNATSHeader,
	}
}

func (e *NATSHeaderExtractor) header(c Context, key string) string {
	nc, ok := c.(*NATSContext)
	if !ok || nc == nil || nc.Msg == nil || nc.Msg.Header == nil {
		return ""
	}
	return strings.TrimSpace(nc.Msg.Header.Get(key))
}

func (e *NATSHeaderExtractor) Supports(c Context) bool {
	return e.header(c, e.TokenHeader) != ""
}

func (e *NATSHeaderExtractor) UserIdentifier(c Context) string {
	return e.header(c, e.UserHeader)
}

func (e *NATSHeaderExtractor) Token(c Context) string {
	return e.header(c, e.TokenHeader)
}
