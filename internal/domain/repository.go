package domain

import "context"

// ConfigRepository is a secondary port that defines how preferences are read.
// Preferences are never written back.
type ConfigRepository interface {
	Load() (Config, error)
}

// VolumeController is a secondary port to the sound server's default devices.
// This interface is defined in the domain layer and implemented by adapters.
type VolumeController interface {
	Volumes(ctx context.Context, device Device) (Volumes, error)
	SetVolumes(ctx context.Context, device Device, channels []float64) error
	SetMuted(ctx context.Context, device Device, muted bool) error
	Close() error
}

// Notifier is a secondary port to the desktop notification service.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
	Close() error
}
