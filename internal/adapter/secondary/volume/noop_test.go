package volume

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volume-ctl/internal/domain"
)

func TestNoopController(t *testing.T) {
	ctrl := NewNoopController()
	ctx := context.Background()

	v, err := ctrl.Volumes(ctx, domain.DeviceOutput)
	require.NoError(t, err)
	assert.Equal(t, []float64{50, 50}, v.Channels)

	require.NoError(t, ctrl.SetVolumes(ctx, domain.DeviceOutput, []float64{70, 70}))
	require.NoError(t, ctrl.SetMuted(ctx, domain.DeviceOutput, true))

	v, err = ctrl.Volumes(ctx, domain.DeviceOutput)
	require.NoError(t, err)
	assert.Equal(t, domain.Volumes{Muted: true, Channels: []float64{70, 70}}, v)

	_, err = ctrl.Volumes(ctx, domain.Device(7))
	assert.ErrorIs(t, err, domain.ErrDeviceUnavailable)
}

func TestOpen(t *testing.T) {
	cfg := domain.DefaultConfig()

	cfg.AudioBackend = "noop"
	ctrl, err := Open(cfg)
	require.NoError(t, err)
	assert.IsType(t, &NoopController{}, ctrl)

	cfg.AudioBackend = "pactl"
	ctrl, err = Open(cfg)
	require.NoError(t, err)
	assert.IsType(t, &PactlController{}, ctrl)

	cfg.AudioBackend = "alsa"
	_, err = Open(cfg)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}
