package domain

import (
	"fmt"
	"math"
)

// Device selects which default device of the sound server a command targets.
type Device int

const (
	DeviceOutput Device = iota
	DeviceInput
)

func (d Device) String() string {
	switch d {
	case DeviceOutput:
		return "output"
	case DeviceInput:
		return "input"
	default:
		return "unknown"
	}
}

// Action is the kind of change a Command performs.
type Action int

const (
	ActionUp Action = iota
	ActionDown
	ActionSet
	ActionToggleMute
	ActionMute
	ActionUnmute
)

func (a Action) String() string {
	switch a {
	case ActionUp:
		return "up"
	case ActionDown:
		return "down"
	case ActionSet:
		return "set"
	case ActionToggleMute:
		return "toggle-mute"
	case ActionMute:
		return "mute"
	case ActionUnmute:
		return "unmute"
	default:
		return "unknown"
	}
}

// TakesAmount reports whether the action uses Command.Amount.
func (a Action) TakesAmount() bool {
	return a == ActionUp || a == ActionDown || a == ActionSet
}

// Command is a parsed volume change request.
type Command struct {
	Action Action
	Amount float64 // percentage, ignored by mute actions
}

// Volumes is the volume state of a single device.
// Channel values are percentages where 100 is the server's nominal volume.
type Volumes struct {
	Muted    bool
	Channels []float64
}

// Max returns the loudest channel, or 0 when there are no channels.
func (v Volumes) Max() float64 {
	loudest := 0.0
	for _, c := range v.Channels {
		if c > loudest {
			loudest = c
		}
	}
	return loudest
}

// Clone returns a deep copy.
func (v Volumes) Clone() Volumes {
	channels := make([]float64, len(v.Channels))
	copy(channels, v.Channels)
	return Volumes{Muted: v.Muted, Channels: channels}
}

// Percent returns the displayed level, rounded to a whole percentage.
func (v Volumes) Percent() int {
	return int(math.Round(v.Max()))
}

// Limits bounds the channel volumes a command may produce.
type Limits struct {
	Min float64
	Max float64
}

// Clamp restricts value to the limits. NaN is treated as Min.
func (l Limits) Clamp(value float64) float64 {
	if math.IsNaN(value) || value < l.Min {
		return l.Min
	}
	if value > l.Max {
		return l.Max
	}
	return value
}

// Notification is a request to show a transient desktop message.
type Notification struct {
	AppName    string
	Summary    string
	Body       string
	Icon       string
	ReplacesID uint32
	Progress   int   // 0-100+ shows a bar, -1 = no bar
	Timeout    int32 // ms, -1 = server default
	StackTag   string
	SoundName  string
}

// HasProgress reports whether the notification carries a progress value.
func (n Notification) HasProgress() bool {
	return n.Progress >= 0
}

// Config holds user preferences loaded from the configuration file.
type Config struct {
	MaxVolume    float64
	Step         float64
	AudioBackend string
	AudioServer  string
	Notification NotificationConfig
}

// NotificationConfig holds notification preferences.
type NotificationConfig struct {
	Enabled  bool
	Backend  string
	AppName  string
	Timeout  int32
	StackTag string
	Sound    bool
}

// Limits returns the volume limits described by the configuration.
func (c Config) Limits() Limits {
	return Limits{Min: 0, Max: c.MaxVolume}
}

// Validate checks if the configuration values are usable.
func (c Config) Validate() error {
	if math.IsNaN(c.MaxVolume) || c.MaxVolume <= 0 {
		return fmt.Errorf("%w: max volume must be positive", ErrInvalidConfig)
	}
	if math.IsNaN(c.Step) || c.Step <= 0 || c.Step > c.MaxVolume {
		return fmt.Errorf("%w: step must be in (0, %g]", ErrInvalidConfig, c.MaxVolume)
	}
	return nil
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() Config {
	return Config{
		MaxVolume:    125,
		Step:         5,
		AudioBackend: "pulse",
		Notification: NotificationConfig{
			Enabled:  true,
			Backend:  "dbus",
			AppName:  "volume-ctl",
			Timeout:  -1,
			StackTag: "volume-ctl",
		},
	}
}
