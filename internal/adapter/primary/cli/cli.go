package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"volume-ctl/internal/adapter/secondary/notify"
	"volume-ctl/internal/adapter/secondary/repository"
	"volume-ctl/internal/adapter/secondary/volume"
	"volume-ctl/internal/domain"
	"volume-ctl/internal/logging"
	"volume-ctl/internal/usecase"
)

var (
	cfgPath   string
	verbosity int
	quietness int
	backend   string
	noNotify  bool

	// baseVerbosity is added to -v/-q; the interactive shell adjusts it with its log builtin.
	baseVerbosity int
)

// Secondary adapter factories. Tests replace them with fakes.
var (
	openController = volume.Open
	openNotifier   = notify.Open
)

// NewRootCmd creates the root CLI command.
// This is the primary adapter that translates CLI inputs to use case calls.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "volume-ctl",
		Short:        "Control the volume of your PulseAudio/PipeWire sound server",
		Long:         "Adjust the default output or input device of a PulseAudio or PipeWire sound server\nand show a desktop notification with the new volume.",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", repository.DefaultPath(), "path to the configuration file")
	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "show more log messages (repeatable)")
	cmd.PersistentFlags().CountVarP(&quietness, "quiet", "q", "show less log messages (repeatable)")
	cmd.PersistentFlags().StringVar(&backend, "backend", "", "audio backend: pulse, pactl or noop (default from config)")
	cmd.PersistentFlags().BoolVar(&noNotify, "no-notify", false, "do not show a notification")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logging.SetVerbosity(baseVerbosity + verbosity - quietness)
	}

	cmd.AddCommand(
		newDeviceCmd(domain.DeviceOutput, "Control the volume of your output device (speakers, headphones, ...)"),
		newDeviceCmd(domain.DeviceInput, "Control the volume of your input device (microphone, ...)"),
		newShellCmd(),
	)

	return cmd
}

func newDeviceCmd(device domain.Device, short string) *cobra.Command {
	alias := "sink"
	if device == domain.DeviceInput {
		alias = "source"
	}
	cmd := &cobra.Command{
		Use:     device.String(),
		Aliases: []string{alias},
		Short:   short,
	}
	cmd.AddCommand(
		newStepCmd(device, domain.ActionUp, "up", "Increase the volume by the given percentage"),
		newStepCmd(device, domain.ActionDown, "down", "Decrease the volume by the given percentage"),
		newSetCmd(device),
		newMuteCmd(device, domain.ActionToggleMute, "Toggle between muted and unmuted"),
		newMuteCmd(device, domain.ActionMute, "Mute the volume"),
		newMuteCmd(device, domain.ActionUnmute, "Unmute the volume"),
		newGetCmd(device),
	)
	return cmd
}

func newStepCmd(device domain.Device, action domain.Action, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [PERCENTAGE]",
		Short: short,
		Long:  short + ".\nWithout PERCENTAGE the configured step (volume.step) is used.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			amount := cfg.Step
			if len(args) == 1 {
				if amount, err = parsePercentage(args[0]); err != nil {
					return err
				}
			}
			return execute(cmd, cfg, device, domain.Command{Action: action, Amount: amount})
		},
	}
}

func newSetCmd(device domain.Device) *cobra.Command {
	return &cobra.Command{
		Use:   "set PERCENTAGE",
		Short: "Set the volume to the given percentage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parsePercentage(args[0])
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return execute(cmd, cfg, device, domain.Command{Action: domain.ActionSet, Amount: amount})
		},
	}
}

func newMuteCmd(device domain.Device, action domain.Action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action.String(),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return execute(cmd, cfg, device, domain.Command{Action: action})
		},
	}
}

func newGetCmd(device domain.Device) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the current volume without changing it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			controller, err := openController(cfg)
			if err != nil {
				return err
			}
			defer controller.Close()

			service := domain.NewVolumeService(cfg.Limits(), cfg.Notification)
			uc := usecase.NewVolumeUseCase(controller, notify.NoopNotifier{}, service)
			v, err := uc.Get(cmd.Context(), device)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), service.Notification(device, v).Summary)
			return nil
		},
	}
}

// execute wires the adapters for one invocation and runs cmd through the use case.
// The controller is opened first so an unreachable server never triggers a notification.
func execute(cmd *cobra.Command, cfg domain.Config, device domain.Device, command domain.Command) error {
	controller, err := openController(cfg)
	if err != nil {
		return err
	}
	defer controller.Close()

	notifier, err := openNotifier(cfg.Notification)
	if err != nil {
		logging.Warnf("%v", domain.NotificationError(err))
		notifier = notify.NoopNotifier{}
	}
	defer notifier.Close()

	uc := usecase.NewVolumeUseCase(controller, notifier, domain.NewVolumeService(cfg.Limits(), cfg.Notification))
	v, err := uc.Execute(cmd.Context(), device, command)
	if err != nil {
		return err
	}
	logging.Debugf("%s volume now %d%% (muted=%t)", device, v.Percent(), v.Muted)
	return nil
}

// loadConfig reads the configuration file and applies flag overrides.
func loadConfig() (domain.Config, error) {
	repo, err := repository.NewFileRepository(cfgPath)
	if err != nil {
		return domain.Config{}, err
	}
	cfg, err := repo.Load()
	if err != nil {
		return domain.Config{}, err
	}
	if backend != "" {
		cfg.AudioBackend = backend
	}
	if noNotify {
		cfg.Notification.Enabled = false
	}
	logging.Tracef("config %s: %+v", cfgPath, cfg)
	return cfg, nil
}

// parsePercentage accepts "5", "2.5" and "5%".
func parsePercentage(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidVolume, s)
	}
	return v, nil
}
