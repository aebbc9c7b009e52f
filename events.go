package mfa

import "github.com/enteocode/mfa/pkg/eventbus"

// Event names.
const (
	EventEnabled          = "mfa.enabled"
	EventDisabled         = "mfa.disabled"
	EventFailed           = "mfa.failed"
	EventRecoveryEnabled  = "mfa.recovery.enabled"
	EventRecoveryDisabled = "mfa.recovery.disabled"
	EventRecoveryUsed     = "mfa.recovery.used"
	EventRecoveryFailed   = "mfa.recovery.failed"
)

// AuthenticationEnabled is emitted after a new secret has been stored.
type AuthenticationEnabled struct {
	User   Identifier `json:"user"`
	Secret string     `json:"secret,omitempty"`
}

func (AuthenticationEnabled) EventName() string { return EventEnabled }

func (e AuthenticationEnabled) EventKey() string { return e.User }

func (e AuthenticationEnabled) Redact() eventbus.Event {
	e.Secret = ""
	return e
}

// AuthenticationDisabled is emitted after the secret has been deleted.
type AuthenticationDisabled struct {
	User Identifier `json:"user"`
}

func (AuthenticationDisabled) EventName() string { return EventDisabled }

func (e AuthenticationDisabled) EventKey() string { return e.User }

// AuthenticationFailed is emitted on every rejected verification. Token is
// empty when the user has no secret.
type AuthenticationFailed struct {
	User  Identifier `json:"user"`
	Token string     `json:"token,omitempty"`
}

func (AuthenticationFailed) EventName() string { return EventFailed }

func (e AuthenticationFailed) EventKey() string { return e.User }

func (e AuthenticationFailed) Redact() eventbus.Event {
	e.Token = ""
	return e
}

// RecoveryEnabled is emitted after a new recovery code set has been stored.
type RecoveryEnabled struct {
	User  Identifier `json:"user"`
	Codes []string   `json:"codes,omitempty"`
}

func (RecoveryEnabled) EventName() string { return EventRecoveryEnabled }

func (e RecoveryEnabled) EventKey() string { return e.User }

func (e RecoveryEnabled) Redact() eventbus.Event {
	e.Codes = nil
	return e
}

// RecoveryDisabled is emitted after the recovery code set has been deleted.
type RecoveryDisabled struct {
	User Identifier `json:"user"`
}

func (RecoveryDisabled) EventName() string { return EventRecoveryDisabled }

func (e RecoveryDisabled) EventKey() string { return e.User }

// RecoveryUsed is emitted once a consumed code has been removed from the
// stored set.
type RecoveryUsed struct {
	User Identifier `json:"user"`
	Code string     `json:"code,omitempty"`
}

func (RecoveryUsed) EventName() string { return EventRecoveryUsed }

func (e RecoveryUsed) EventKey() string { return e.User }

func (e RecoveryUsed) Redact() eventbus.Event {
	e.Code = ""
	return e
}

// RecoveryFailed is emitted when a code is unknown or no set exists.
type RecoveryFailed struct {
	User Identifier `json:"user"`
	Code string     `json:"code,omitempty"`
}

func (RecoveryFailed) EventName() string { return EventRecoveryFailed }

func (e RecoveryFailed) EventKey() string { return e.User }

func (e RecoveryFailed) Redact() eventbus.Event {
	e.Code = ""
	return e
}
