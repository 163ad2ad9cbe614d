package volume

import (
	"fmt"

	"volume-ctl/internal/domain"
)

// Open returns the controller for the configured backend.
// For the pulse backend this connects to the sound server.
func Open(cfg domain.Config) (domain.VolumeController, error) {
	switch cfg.AudioBackend {
	case "", "pulse":
		return NewPulseController(cfg.Notification.AppName, cfg.AudioServer)
	case "pactl":
		return NewPactlController(nil), nil
	case "noop":
		return NewNoopController(), nil
	default:
		return nil, fmt.Errorf("%w: unknown audio backend %q", domain.ErrInvalidConfig, cfg.AudioBackend)
	}
}
