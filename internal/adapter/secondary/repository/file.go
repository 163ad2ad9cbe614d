package repository

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"volume-ctl/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FileRepository implements domain.ConfigRepository using a TOML file.
// The file is optional and never written.
// This is a secondary adapter.
type FileRepository struct {
	path string
}

// NewFileRepository creates a new file-based config repository.
func NewFileRepository(path string) (domain.ConfigRepository, error) {
	if path == "" {
		return nil, errors.New("path is required")
	}
	return &FileRepository{path: path}, nil
}

// persistedData represents the TOML structure on disk.
// Pointer fields distinguish "absent" from zero values.
type persistedData struct {
	Volume struct {
		Max  *float64 `toml:"max" validate:"omitempty,gt=0,lte=1000"`
		Step *float64 `toml:"step" validate:"omitempty,gt=0,lte=100"`
	} `toml:"volume"`
	Audio struct {
		Backend string `toml:"backend" validate:"omitempty,oneof=pulse pactl noop"`
		Server  string `toml:"server" validate:"omitempty,max=1024"`
	} `toml:"audio"`
	Notification struct {
		Enabled   *bool  `toml:"enabled"`
		Backend   string `toml:"backend" validate:"omitempty,oneof=dbus notify-send none"`
		AppName   string `toml:"app_name" validate:"omitempty,max=128"`
		TimeoutMs *int32 `toml:"timeout_ms" validate:"omitempty,gte=-1"`
		StackTag  string `toml:"stack_tag" validate:"omitempty,max=128"`
		Sound     *bool  `toml:"sound"`
	} `toml:"notification"`
}

// Load reads the configuration from disk, falling back to defaults for
// anything the file does not set.
func (f *FileRepository) Load() (domain.Config, error) {
	config := domain.DefaultConfig()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return domain.Config{}, fmt.Errorf("read config: %w", err)
	}

	var persisted persistedData
	if err := toml.Unmarshal(data, &persisted); err != nil {
		return domain.Config{}, fmt.Errorf("%w: parse %s: %v", domain.ErrInvalidConfig, f.path, err)
	}
	if err := validate.Struct(&persisted); err != nil {
		return domain.Config{}, fmt.Errorf("%w: %s", domain.ErrInvalidConfig, formatValidation(err))
	}

	if persisted.Volume.Max != nil {
		config.MaxVolume = *persisted.Volume.Max
	}
	if persisted.Volume.Step != nil {
		config.Step = *persisted.Volume.Step
	}
	if persisted.Audio.Backend != "" {
		config.AudioBackend = persisted.Audio.Backend
	}
	config.AudioServer = persisted.Audio.Server

	n := persisted.Notification
	if n.Enabled != nil {
		config.Notification.Enabled = *n.Enabled
	}
	if n.Backend != "" {
		config.Notification.Backend = n.Backend
	}
	if n.AppName != "" {
		config.Notification.AppName = n.AppName
	}
	if n.TimeoutMs != nil {
		config.Notification.Timeout = *n.TimeoutMs
	}
	if n.StackTag != "" {
		config.Notification.StackTag = n.StackTag
	}
	if n.Sound != nil {
		config.Notification.Sound = *n.Sound
	}

	if err := config.Validate(); err != nil {
		return domain.Config{}, err
	}
	return config, nil
}

func formatValidation(err error) string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}
	msgs := make([]string, 0, len(fieldErrors))
	for _, e := range fieldErrors {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (%v)", e.Namespace(), e.Tag(), e.Value()))
	}
	return strings.Join(msgs, "; ")
}

// DefaultPath returns the default configuration file path.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			cwd, _ := os.Getwd()
			return filepath.Join(cwd, "volume-ctl.toml")
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "volume-ctl", "config.toml")
}
