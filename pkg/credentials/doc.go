// Package credentials resolves "which user is presenting which token" from
// an arbitrary call context: an HTTP request, a gRPC call, a NATS message or
// any custom transport.
//
// # Contexts and extractors
//
// A Context only has to report its transport type. An Extractor knows how to
// read a user identifier and a token from contexts it Supports. Extractors
// are registered in a Registry under one or more type labels, or under
// TypeAll to be considered for every type:
//
//	reg := credentials.NewRegistry()
//	_ = reg.Register(credentials.NewHTTPExtractor(), credentials.TypeHTTP)
//	_ = reg.Register(credentials.NewMetadataExtractor(), credentials.TypeRPC)
//	_ = reg.Register(myFallback) // TypeAll
//	reg.Freeze()
//
//	if e := reg.Resolve(credentials.NewHTTPContext(r)); e != nil {
//		user, token := e.UserIdentifier(c), e.Token(c)
//	}
//
// # Resolution order
//
// Get(type) yields the extractors registered for that type in registration
// order, followed by the TypeAll extractors (unless type is TypeAll itself).
// Resolve returns the first one whose Supports reports true. Registering the
// same extractor twice under one label has no effect.
//
// # Lifecycle
//
// Registration happens at startup. Freeze ends it: later Register calls fail
// with ErrRegistryFrozen, and resolution can run concurrently without
// further synchronisation concerns.
package credentials
