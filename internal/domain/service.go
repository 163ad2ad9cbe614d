package domain

import (
	"fmt"
	"math"
)

// deviceProfile describes how a device is presented in notifications.
type deviceProfile struct {
	title      string
	iconPrefix string
	replacesID uint32
}

var profiles = map[Device]deviceProfile{
	DeviceOutput: {title: "Volume", iconPrefix: "audio-volume", replacesID: 0x49adff07},
	DeviceInput:  {title: "Microphone", iconPrefix: "microphone-sensitivity", replacesID: 0x49adff08},
}

// VolumeService provides pure domain logic for volume commands.
// This service has no side effects and no dependencies on external concerns.
type VolumeService struct {
	limits Limits
	notify NotificationConfig
}

// NewVolumeService creates a new volume service.
func NewVolumeService(limits Limits, notify NotificationConfig) *VolumeService {
	return &VolumeService{limits: limits, notify: notify}
}

// Apply computes the state that results from running cmd against current.
// Set targets outside the limits are clamped; step amounts must be finite and non-negative.
// The input is not modified.
func (s *VolumeService) Apply(current Volumes, cmd Command) (Volumes, error) {
	switch {
	case cmd.Action == ActionSet && math.IsNaN(cmd.Amount):
		return Volumes{}, fmt.Errorf("%w: %v", ErrInvalidVolume, cmd.Amount)
	case (cmd.Action == ActionUp || cmd.Action == ActionDown) &&
		(math.IsNaN(cmd.Amount) || math.IsInf(cmd.Amount, 0) || cmd.Amount < 0):
		return Volumes{}, fmt.Errorf("%w: %v", ErrInvalidVolume, cmd.Amount)
	}

	next := current.Clone()
	switch cmd.Action {
	case ActionUp:
		s.mapChannels(next.Channels, func(v float64) float64 { return v + cmd.Amount })
	case ActionDown:
		s.mapChannels(next.Channels, func(v float64) float64 { return v - cmd.Amount })
	case ActionSet:
		s.mapChannels(next.Channels, func(float64) float64 { return cmd.Amount })
	case ActionMute:
		next.Muted = true
	case ActionUnmute:
		next.Muted = false
	case ActionToggleMute:
		next.Muted = !next.Muted
	default:
		return Volumes{}, fmt.Errorf("unknown action %d", cmd.Action)
	}
	return next, nil
}

func (s *VolumeService) mapChannels(channels []float64, fn func(float64) float64) {
	for i, v := range channels {
		channels[i] = s.limits.Clamp(fn(v))
	}
}

// Notification builds the message shown after a command changed device.
func (s *VolumeService) Notification(device Device, v Volumes) Notification {
	p, ok := profiles[device]
	if !ok {
		p = profiles[DeviceOutput]
	}
	level := v.Max()
	pct := v.Percent()

	n := Notification{
		AppName:    s.notify.AppName,
		Icon:       p.iconPrefix + "-" + IconLevel(level, v.Muted),
		ReplacesID: p.replacesID,
		Progress:   pct,
		Timeout:    s.notify.Timeout,
		StackTag:   s.notify.StackTag,
	}
	if v.Muted {
		n.Summary = fmt.Sprintf("%s: muted (%d%%)", p.title, pct)
	} else {
		n.Summary = fmt.Sprintf("%s: %d%%", p.title, pct)
	}
	if s.notify.Sound && device == DeviceOutput {
		n.SoundName = "audio-volume-change"
	}
	return n
}

// IconLevel returns the freedesktop icon suffix for a volume level.
func IconLevel(level float64, muted bool) string {
	switch {
	case muted:
		return "muted"
	case level <= 100.0/3.0:
		return "low"
	case level < 100.0*2.0/3.0:
		return "medium"
	default:
		return "high"
	}
}
