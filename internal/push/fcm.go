package push

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"firebase.google.com/go/v4/errorutils"
	"firebase.google.com/go/v4/messaging"
)

// FCM sends notifications through Firebase Cloud Messaging.
type FCM struct {
	client *messaging.Client
	logger *slog.Logger
}

// NewFCM wraps an initialized messaging client.
func NewFCM(client *messaging.Client, logger *slog.Logger) *FCM {
	return &FCM{client: client, logger: logger}
}

var _ Sender = (*FCM)(nil)

func (f *FCM) Send(ctx context.Context, n Notification) error {
	msg := &messaging.Message{
		Token: n.Token,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: n.Data,
	}

	id, err := f.client.Send(ctx, msg)
	if err != nil {
		if isInvalidToken(err) {
			return fmt.Errorf("%w: %s", ErrInvalidToken, err)
		}
		return fmt.Errorf("fcm send: %w", err)
	}

	f.logger.Debug("push sent", "message_id", id)
	return nil
}

// isInvalidToken classifies FCM failures that mean the registration token
// itself is bad: unregistered (uninstalled app), invalid-argument, or the
// documented "registration token is not a valid" message pattern.
func isInvalidToken(err error) bool {
	if messaging.IsUnregistered(err) || errorutils.IsInvalidArgument(err) {
		return true
	}
	return strings.Contains(err.Error(), "registration token is not a valid")
}
