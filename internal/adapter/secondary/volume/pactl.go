package volume

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"volume-ctl/internal/domain"
)

// Runner executes pactl with the given arguments and returns its combined output.
type Runner func(ctx context.Context, args ...string) ([]byte, error)

// PactlController implements domain.VolumeController using the pactl command.
// This is a secondary adapter.
type PactlController struct {
	run Runner
}

// NewPactlController creates a pactl volume controller.
// A nil runner executes the pactl binary from PATH.
func NewPactlController(run Runner) domain.VolumeController {
	if run == nil {
		run = execPactl
	}
	return &PactlController{run: run}
}

// pactlCommand builds a pactl invocation. Output is parsed, so pactl
// must not translate it.
func pactlCommand(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "pactl", args...)
	cmd.Env = append(os.Environ(), "LC_ALL=C")
	return cmd
}

func execPactl(ctx context.Context, args ...string) ([]byte, error) {
	cmd := pactlCommand(ctx, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return output, fmt.Errorf("pactl failed: %w, output: %s", err, strings.TrimSpace(string(output)))
	}
	return output, nil
}

// rawVolumeRe matches the raw value in "front-left: 32768 /  50% / -18.06 dB".
var rawVolumeRe = regexp.MustCompile(`(\d+)\s*/\s*\d+%`)

func target(device domain.Device) (kind, name string, err error) {
	switch device {
	case domain.DeviceOutput:
		return "sink", defaultSink, nil
	case domain.DeviceInput:
		return "source", defaultSource, nil
	default:
		return "", "", fmt.Errorf("unknown device %d", device)
	}
}

// Volumes reads the default device via get-*-volume and get-*-mute.
func (p *PactlController) Volumes(ctx context.Context, device domain.Device) (domain.Volumes, error) {
	kind, name, err := target(device)
	if err != nil {
		return domain.Volumes{}, err
	}

	out, err := p.run(ctx, "get-"+kind+"-volume", name)
	if err != nil {
		return domain.Volumes{}, classifyPactl(err, domain.ErrDeviceUnavailable)
	}
	channels, err := parseVolumes(string(out))
	if err != nil {
		return domain.Volumes{}, fmt.Errorf("%w: %v", domain.ErrDeviceUnavailable, err)
	}

	out, err = p.run(ctx, "get-"+kind+"-mute", name)
	if err != nil {
		return domain.Volumes{}, classifyPactl(err, domain.ErrDeviceUnavailable)
	}
	muted, err := parseMute(string(out))
	if err != nil {
		return domain.Volumes{}, fmt.Errorf("%w: %v", domain.ErrDeviceUnavailable, err)
	}

	return domain.Volumes{Muted: muted, Channels: channels}, nil
}

// SetVolumes passes one raw value per channel to set-*-volume.
func (p *PactlController) SetVolumes(ctx context.Context, device domain.Device, channels []float64) error {
	kind, name, err := target(device)
	if err != nil {
		return err
	}
	args := []string{"set-" + kind + "-volume", name}
	for _, c := range channels {
		args = append(args, strconv.FormatUint(uint64(percentToRaw(c)), 10))
	}
	if _, err := p.run(ctx, args...); err != nil {
		return classifyPactl(err, domain.ErrApplyRejected)
	}
	return nil
}

// SetMuted calls set-*-mute.
func (p *PactlController) SetMuted(ctx context.Context, device domain.Device, muted bool) error {
	kind, name, err := target(device)
	if err != nil {
		return err
	}
	flag := "0"
	if muted {
		flag = "1"
	}
	if _, err := p.run(ctx, "set-"+kind+"-mute", name, flag); err != nil {
		return classifyPactl(err, domain.ErrApplyRejected)
	}
	return nil
}

// Close is a no-op; every call is a separate process.
func (p *PactlController) Close() error {
	return nil
}

func parseVolumes(out string) ([]float64, error) {
	matches := rawVolumeRe.FindAllStringSubmatch(out, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no channel volumes in %q", strings.TrimSpace(out))
	}
	channels := make([]float64, len(matches))
	for i, m := range matches {
		raw, err := strconv.ParseUint(m[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("parse channel volume %q: %w", m[1], err)
		}
		channels[i] = rawToPercent(uint32(raw))
	}
	return channels, nil
}

func parseMute(out string) (bool, error) {
	value := strings.TrimSpace(out)
	if i := strings.Index(value, ":"); i >= 0 {
		value = strings.TrimSpace(value[i+1:])
	}
	switch strings.ToLower(value) {
	case "yes", "1", "true":
		return true, nil
	case "no", "0", "false":
		return false, nil
	default:
		return false, fmt.Errorf("unexpected mute state %q", strings.TrimSpace(out))
	}
}

// classifyPactl maps pactl failures to domain error kinds.
func classifyPactl(err error, fallback error) error {
	msg := err.Error()
	switch {
	case errors.Is(err, exec.ErrNotFound),
		strings.Contains(msg, "Connection failure"),
		strings.Contains(msg, "Connection refused"):
		return fmt.Errorf("%w: %v", domain.ErrServerUnreachable, err)
	case strings.Contains(msg, "No such entity"):
		return fmt.Errorf("%w: %v", domain.ErrDeviceUnavailable, err)
	default:
		return fmt.Errorf("%w: %v", fallback, err)
	}
}
