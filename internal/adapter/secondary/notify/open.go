package notify

import (
	"fmt"

	"volume-ctl/internal/domain"
)

// Open returns the notifier for the configured backend.
// Disabled notifications yield a NoopNotifier.
func Open(cfg domain.NotificationConfig) (domain.Notifier, error) {
	if !cfg.Enabled {
		return NoopNotifier{}, nil
	}
	switch cfg.Backend {
	case "", "dbus":
		n, err := NewDBusNotifier()
		if err != nil {
			return nil, err
		}
		return n, nil
	case "notify-send":
		return NewNotifySendNotifier(nil), nil
	case "none":
		return NoopNotifier{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown notification backend %q", domain.ErrInvalidConfig, cfg.Backend)
	}
}
