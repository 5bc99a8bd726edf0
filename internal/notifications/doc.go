// Package notifications delivers optional ntfy push notifications for
// pipeline events. Without a configured topic every call is a no-op, so
// callers never need to branch on whether notifications are enabled.
package notifications
