// Package services contains stateless domain services that coordinate rules
// spanning more than one aggregate. Currently this is the access policy:
// a single decision point for whether a resolved principal may act on a
// resource, replacing scattered per-method owner/admin checks.
package services
