// Package logging constructs the slog loggers used across binder.
//
// Components attach a "component" attribute so console output stays
// greppable; the attr helpers keep call sites short and uniform. Console
// format is a text handler tuned for terminals, JSON for log shipping.
package logging
