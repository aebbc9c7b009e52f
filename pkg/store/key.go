package store

import (
	"strings"

	"github.com/google/uuid"
)

// Namespace separates the kinds of values kept for a user.
type Namespace string

const (
	NamespaceSecret        Namespace = "secret"
	NamespaceRecoveryCodes Namespace = "recovery-codes"
)

// DefaultRoot prefixes every key unless WithRoot is used.
const DefaultRoot = "mfa"

// Key derives the storage key for user in ns.
func Key(root, user string, ns Namespace) string {
	id := uuid.NewSHA1(uuid.Nil, []byte(user))
	return strings.Join([]string{root, string(ns), id.String()}, ":")
}
