// Package store persists MFA state: one shared secret and one recovery-code
// set per user, each under its own namespace, encrypted at rest.
//
// # Keys
//
// Raw user identifiers never reach the backend. Each value is stored under
//
//	root:namespace:uuid-v5(identifier)
//
// where the UUID is the name-based SHA-1 UUID of the identifier in the nil
// namespace. The root defaults to "mfa" and can be changed with WithRoot.
//
// # Pipeline
//
// Writes run serialize → encrypt → kv.Set; reads run kv.Get → decrypt →
// deserialize. A value that is missing, unreadable, undecryptable or
// undecodable is logged and reported as absent; backend failures surface as
// false from Set and Delete. The store never retries.
//
// # Namespaces
//
// The typed accessors keep the historical asymmetry between namespaces:
// Secret returns "" when no secret is stored, while RecoveryCodes returns a
// nil set.
package store
