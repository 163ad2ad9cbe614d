package volume

import (
	"context"

	"volume-ctl/internal/domain"
)

// NoopController implements domain.VolumeController with an in-memory device pair.
// Useful for testing or for a dry run without a sound server.
type NoopController struct {
	devices map[domain.Device]domain.Volumes
}

// NewNoopController creates a no-op volume controller with both devices at 50%.
func NewNoopController() domain.VolumeController {
	return &NoopController{devices: map[domain.Device]domain.Volumes{
		domain.DeviceOutput: {Channels: []float64{50, 50}},
		domain.DeviceInput:  {Channels: []float64{50}},
	}}
}

// Volumes returns the in-memory state.
func (n *NoopController) Volumes(_ context.Context, device domain.Device) (domain.Volumes, error) {
	v, ok := n.devices[device]
	if !ok {
		return domain.Volumes{}, domain.ErrDeviceUnavailable
	}
	return v.Clone(), nil
}

// SetVolumes updates the in-memory state and always succeeds.
func (n *NoopController) SetVolumes(_ context.Context, device domain.Device, channels []float64) error {
	v := n.devices[device]
	v.Channels = append([]float64(nil), channels...)
	n.devices[device] = v
	return nil
}

// SetMuted updates the in-memory state and always succeeds.
func (n *NoopController) SetMuted(_ context.Context, device domain.Device, muted bool) error {
	v := n.devices[device]
	v.Muted = muted
	n.devices[device] = v
	return nil
}

func (n *NoopController) Close() error {
	return nil
}
