// Package notifications delivers push notifications for sync runs.
//
// The default implementation publishes to ntfy using the topic configured
// in the notifications section; without a topic a noop service is
// returned so callers never need to branch.
package notifications
