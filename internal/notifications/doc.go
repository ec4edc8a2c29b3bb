// Package notifications publishes scan and ledger milestones to an ntfy
// topic. With no topic configured every notifier call is a no-op, so
// callers never need to branch on whether notifications are enabled.
package notifications
