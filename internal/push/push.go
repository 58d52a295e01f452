// Package push sends push notifications to user devices. The concrete
// transport is Firebase Cloud Messaging; the Sender interface keeps the
// sweep testable without it.
package push

import (
	"context"
	"errors"
)

// ErrInvalidToken marks a dispatch failure caused by a malformed or
// unregistered device token. The owning profile's token fields should be
// cleared so delivery is not retried against a dead token.
var ErrInvalidToken = errors.New("invalid registration token")

// Notification is a single push message addressed to one device token.
type Notification struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

// Sender delivers one notification per call.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}
