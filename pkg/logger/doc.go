// Package logger builds the *slog.Logger instances used across the MFA
// packages and provides attribute helpers so every component logs the same
// keys.
//
// # Creating a logger
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithTextFormatter(),
//		logger.WithAttr(slog.String("service", "accounts")),
//	)
//
// The default is JSON to stdout at INFO. WithProduction and WithDevelopment
// apply the usual presets, and WithContextValue copies request-scoped values
// from the context into every record.
//
// # Attributes
//
// Components log users by identifier only; secrets, tokens and recovery codes
// never appear in log records.
//
//	log.InfoContext(ctx, "mfa enabled",
//		logger.Component("mfa.service"),
//		logger.UserID(user),
//		logger.Event("mfa.enabled"),
//	)
//
// Helpers return an empty slog.Attr for nil input, which slog drops.
package logger
