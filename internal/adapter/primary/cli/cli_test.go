package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volume-ctl/internal/adapter/secondary/volume"
	"volume-ctl/internal/domain"
)

type recordingNotifier struct {
	sent []domain.Notification
	err  error
}

func (r *recordingNotifier) Notify(_ context.Context, n domain.Notification) error {
	r.sent = append(r.sent, n)
	return r.err
}

func (r *recordingNotifier) Close() error { return nil }

// stubAdapters replaces the adapter factories for the duration of the test.
func stubAdapters(t *testing.T, ctrl domain.VolumeController, ctrlErr error, n domain.Notifier) {
	t.Helper()
	prevCtrl, prevNotifier := openController, openNotifier
	t.Cleanup(func() {
		openController, openNotifier = prevCtrl, prevNotifier
	})
	openController = func(domain.Config) (domain.VolumeController, error) {
		if ctrlErr != nil {
			return nil, ctrlErr
		}
		return ctrl, nil
	}
	openNotifier = func(domain.NotificationConfig) (domain.Notifier, error) {
		return n, nil
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.toml")}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestOutputUp(t *testing.T) {
	ctrl := volume.NewNoopController()
	n := &recordingNotifier{}
	stubAdapters(t, ctrl, nil, n)

	_, err := run(t, "output", "up", "10")
	require.NoError(t, err)

	v, err := ctrl.Volumes(context.Background(), domain.DeviceOutput)
	require.NoError(t, err)
	assert.Equal(t, []float64{60, 60}, v.Channels)
	require.Len(t, n.sent, 1)
	assert.Equal(t, "Volume: 60%", n.sent[0].Summary)
}

func TestStepDefaultsToConfig(t *testing.T) {
	ctrl := volume.NewNoopController()
	stubAdapters(t, ctrl, nil, &recordingNotifier{})

	_, err := run(t, "source", "down")
	require.NoError(t, err)

	v, err := ctrl.Volumes(context.Background(), domain.DeviceInput)
	require.NoError(t, err)
	assert.Equal(t, []float64{45}, v.Channels)
}

func TestConfigFileStep(t *testing.T) {
	ctrl := volume.NewNoopController()
	stubAdapters(t, ctrl, nil, &recordingNotifier{})

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[volume]\nstep = 20.0\nmax = 60.0\n"), 0o644))

	root := NewRootCmd()
	root.SetArgs([]string{"--config", path, "output", "up"})
	require.NoError(t, root.Execute())

	v, err := ctrl.Volumes(context.Background(), domain.DeviceOutput)
	require.NoError(t, err)
	assert.Equal(t, []float64{60, 60}, v.Channels)
}

func TestSetClampsAndAcceptsPercentSign(t *testing.T) {
	ctrl := volume.NewNoopController()
	stubAdapters(t, ctrl, nil, &recordingNotifier{})

	_, err := run(t, "output", "set", "300%")
	require.NoError(t, err)

	v, err := ctrl.Volumes(context.Background(), domain.DeviceOutput)
	require.NoError(t, err)
	assert.Equal(t, []float64{125, 125}, v.Channels)
}

func TestSetBelowZeroClampsToFloor(t *testing.T) {
	ctrl := volume.NewNoopController()
	n := &recordingNotifier{}
	stubAdapters(t, ctrl, nil, n)

	_, err := run(t, "output", "set", "--", "-20")
	require.NoError(t, err)

	v, err := ctrl.Volumes(context.Background(), domain.DeviceOutput)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, v.Channels)
	require.Len(t, n.sent, 1)
	assert.Equal(t, "Volume: 0%", n.sent[0].Summary)
}

func TestToggleMuteTwice(t *testing.T) {
	ctrl := volume.NewNoopController()
	n := &recordingNotifier{}
	stubAdapters(t, ctrl, nil, n)

	_, err := run(t, "input", "toggle-mute")
	require.NoError(t, err)
	_, err = run(t, "input", "toggle-mute")
	require.NoError(t, err)

	v, err := ctrl.Volumes(context.Background(), domain.DeviceInput)
	require.NoError(t, err)
	assert.False(t, v.Muted)
	require.Len(t, n.sent, 2)
	assert.Equal(t, "Microphone: muted (50%)", n.sent[0].Summary)
	assert.Equal(t, "Microphone: 50%", n.sent[1].Summary)
}

func TestServerUnreachable(t *testing.T) {
	n := &recordingNotifier{}
	stubAdapters(t, nil, domain.ErrServerUnreachable, n)

	out, err := run(t, "output", "mute")
	assert.ErrorIs(t, err, domain.ErrServerUnreachable)
	assert.Contains(t, out, "sound server unreachable")
	assert.Empty(t, n.sent)
}

func TestNotificationFailureIsNotFatal(t *testing.T) {
	ctrl := volume.NewNoopController()
	n := &recordingNotifier{err: errors.New("no daemon")}
	stubAdapters(t, ctrl, nil, n)

	_, err := run(t, "output", "set", "20")
	require.NoError(t, err)
	assert.Len(t, n.sent, 1)
}

func TestNotifierOpenFailureIsNotFatal(t *testing.T) {
	ctrl := volume.NewNoopController()
	stubAdapters(t, ctrl, nil, nil)
	openNotifier = func(domain.NotificationConfig) (domain.Notifier, error) {
		return nil, errors.New("no session bus")
	}

	_, err := run(t, "output", "unmute")
	assert.NoError(t, err)
}

func TestInvalidPercentage(t *testing.T) {
	stubAdapters(t, volume.NewNoopController(), nil, &recordingNotifier{})

	_, err := run(t, "output", "set", "loud")
	assert.ErrorIs(t, err, domain.ErrInvalidVolume)

	_, err = run(t, "output", "up", "NaN")
	assert.ErrorIs(t, err, domain.ErrInvalidVolume)
}

func TestGet(t *testing.T) {
	n := &recordingNotifier{}
	stubAdapters(t, volume.NewNoopController(), nil, n)

	out, err := run(t, "output", "get")
	require.NoError(t, err)
	assert.Equal(t, "Volume: 50%\n", out)
	assert.Empty(t, n.sent)
}

func TestNoNotifyFlag(t *testing.T) {
	stubAdapters(t, volume.NewNoopController(), nil, nil)
	var enabled bool
	openNotifier = func(cfg domain.NotificationConfig) (domain.Notifier, error) {
		enabled = cfg.Enabled
		return &recordingNotifier{}, nil
	}

	_, err := run(t, "--no-notify", "output", "mute")
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestBackendFlag(t *testing.T) {
	var got string
	stubAdapters(t, nil, nil, &recordingNotifier{})
	openController = func(cfg domain.Config) (domain.VolumeController, error) {
		got = cfg.AudioBackend
		return volume.NewNoopController(), nil
	}

	_, err := run(t, "--backend", "pactl", "output", "get")
	require.NoError(t, err)
	assert.Equal(t, "pactl", got)
}

func TestParsePercentage(t *testing.T) {
	v, err := parsePercentage(" 2.5% ")
	require.NoError(t, err)
	assert.Equal(t, 2.5, v)

	_, err = parsePercentage("")
	assert.ErrorIs(t, err, domain.ErrInvalidVolume)
}
