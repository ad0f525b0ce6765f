// Package logging configures the zap logger used across sredlog.
//
// Logs go to stderr so stdout stays clean for report output. The console
// encoder is the default for interactive use; json is available for
// machine-readable runs.
package logging
