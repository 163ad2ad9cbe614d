package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrServerUnreachable indicates that no connection to the sound server could be established.
	ErrServerUnreachable = errors.New("sound server unreachable")

	// ErrDeviceUnavailable indicates that the server has no default device of the requested kind.
	ErrDeviceUnavailable = errors.New("default device unavailable")

	// ErrApplyRejected indicates that the server refused a volume or mute change.
	ErrApplyRejected = errors.New("volume change rejected")

	// ErrNotificationFailed indicates that the notification could not be shown.
	// It is never fatal.
	ErrNotificationFailed = errors.New("notification failed")

	// ErrInvalidVolume indicates that a requested amount is not a usable percentage.
	ErrInvalidVolume = errors.New("invalid volume percentage")

	// ErrInvalidConfig indicates that the configuration file holds unusable values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// NotificationError wraps a notifier failure in ErrNotificationFailed.
func NotificationError(err error) error {
	return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
}
