package credentials

import (
	"context"
	"strings"

	"google.golang.org/grpc/metadata"
)

// Default gRPC metadata keys. Metadata keys are lower case.
const (
	DefaultTokenMetadataKey = "x-mfa-token"
	DefaultUserMetadataKey  = "x-user-id"
)

// GRPCContext wraps the context of an incoming RPC.
type GRPCContext struct {
	Ctx context.Context
}

// NewGRPCContext wraps ctx.
func NewGRPCContext(ctx context.Context) *GRPCContext {
	return &GRPCContext{Ctx: ctx}
}

func (*GRPCContext) Type() string {
	return TypeRPC
}

// MetadataExtractor reads credentials from incoming gRPC metadata.
type MetadataExtractor struct {
	TokenKey string
	UserKey  string
	UserFunc func(ctx context.Context) string
}

var _ Extractor = (*MetadataExtractor)(nil)

// NewMetadataExtractor uses the default metadata keys.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{
		TokenKey: DefaultTokenMetadataKey,
		UserKey:  DefaultUserMetadataKey,
	}
}

func (e *MetadataExtractor) incoming(c Context) context.Context {
	gc, ok := c.(*GRPCContext)
	if !ok || gc == nil {
		return nil
	}
	return gc.Ctx
}

func (e *MetadataExtractor) value(c Context, key string) string {
	ctx := e.incoming(c)
	if ctx == nil {
		return ""
	}
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(key)
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

func (e *MetadataExtractor) Supports(c Context) bool {
	return e.value(c, e.TokenKey) != ""
}

func (e *MetadataExtractor) UserIdentifier(c Context) string {
	if e.UserFunc != nil {
		if ctx := e.incoming(c); ctx != nil {
			return e.UserFunc(ctx)
		}
		return ""
	}
	return e.value(c, e.UserKey)
}

func (e *MetadataExtractor) Token(c Context) string {
	return e.value(c, e.TokenKey)
}
