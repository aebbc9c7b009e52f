package mfa

import (
	"context"

	"github.com/enteocode/mfa/pkg/eventbus"
)

// disableRecoveryOnDisabled removes the recovery codes of a user whose MFA
// was disabled.
func disableRecoveryOnDisabled(r *Recovery) eventbus.Handler {
	return func(ctx context.Context, event eventbus.Event) error {
		e, ok := event.(AuthenticationDisabled)
		if !ok {
			return nil
		}
		r.Disable(ctx, e.User)
		return nil
	}
}
