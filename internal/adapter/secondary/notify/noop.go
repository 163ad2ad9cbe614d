package notify

import (
	"context"

	"volume-ctl/internal/domain"
)

// NoopNotifier discards notifications.
type NoopNotifier struct{}

func (NoopNotifier) Notify(context.Context, domain.Notification) error {
	return nil
}

func (NoopNotifier) Close() error {
	return nil
}
