package services

import (
	"errors"
	"fmt"

	"anonrelay_server/models"
)

var (
	// ErrSelfBinding rejects an attempt to bind a participant to themselves.
	ErrSelfBinding = errors.New("cannot bind a participant to themselves")

	// ErrUnauthorized marks an admin-only operation invoked by a non-admin.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrEmptyBroadcast marks a broadcast request with no message body.
	ErrEmptyBroadcast = errors.New("broadcast text is empty")

	// ErrRecipientUnreachable is the usual cause inside a DeliveryError:
	// the target has no live connection on the transport.
	ErrRecipientUnreachable = errors.New("recipient unreachable")
)

// DeliveryError reports a failed transport send. Blocked, offline, unknown
// and timed-out recipients all surface this way; the relay defines no retry
// policy of its own.
type DeliveryError struct {
	Target models.Handle
	Err    error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery to %d failed: %v", e.Target, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
