// Package logger wraps zap for the manifest generator:
//   - a global sugared logger with a console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing for the --log-level flag and the config file,
//   - convenience functions (Infof, InfoKV, WarnKV, ...).
//
// Services take a context and pull the logger from it, so every stage of a run
// logs under the same name and fields.
package logger
