package volume

import (
	"context"
	"fmt"

	"github.com/jfreymuth/pulse"
	"github.com/jfreymuth/pulse/proto"

	"volume-ctl/internal/domain"
	"volume-ctl/internal/logging"
)

// requester is the part of *pulse.Client used by PulseController.
type requester interface {
	RawRequest(cmd proto.RequestArgs, rpl proto.Reply) error
	Close()
}

// PulseController implements domain.VolumeController over the PulseAudio
// native protocol. PipeWire is reached through pipewire-pulse.
// This is a secondary adapter.
type PulseController struct {
	client requester
}

// NewPulseController connects to the sound server.
// An empty server uses the default (PULSE_SERVER or the user's runtime socket).
func NewPulseController(appName, server string) (domain.VolumeController, error) {
	opts := []pulse.ClientOption{pulse.ClientApplicationName(appName)}
	if server != "" {
		opts = append(opts, pulse.ClientServerString(server))
	}
	c, err := pulse.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrServerUnreachable, err)
	}
	logging.Debugf("connected to sound server")
	return &PulseController{client: c}, nil
}

// Volumes reads the channel volumes and mute state of the default device.
func (p *PulseController) Volumes(ctx context.Context, device domain.Device) (domain.Volumes, error) {
	if err := ctx.Err(); err != nil {
		return domain.Volumes{}, err
	}

	var (
		raw   proto.ChannelVolumes
		muted bool
		name  string
	)
	switch device {
	case domain.DeviceOutput:
		var info proto.GetSinkInfoReply
		if err := p.client.RawRequest(&proto.GetSinkInfo{SinkIndex: proto.Undefined, SinkName: defaultSink}, &info); err != nil {
			return domain.Volumes{}, fmt.Errorf("%w: %v", domain.ErrDeviceUnavailable, err)
		}
		raw, muted, name = info.ChannelVolumes, info.Mute, info.SinkName
	case domain.DeviceInput:
		var info proto.GetSourceInfoReply
		if err := p.client.RawRequest(&proto.GetSourceInfo{SourceIndex: proto.Undefined, SourceName: defaultSource}, &info); err != nil {
			return domain.Volumes{}, fmt.Errorf("%w: %v", domain.ErrDeviceUnavailable, err)
		}
		raw, muted, name = info.ChannelVolumes, info.Mute, info.SourceName
	default:
		return domain.Volumes{}, fmt.Errorf("unknown device %d", device)
	}

	if len(raw) == 0 {
		return domain.Volumes{}, fmt.Errorf("%w: %s reports no channels", domain.ErrDeviceUnavailable, name)
	}
	logging.Tracef("%s device %s raw volumes %v", device, name, raw)

	channels := make([]float64, len(raw))
	for i, v := range raw {
		channels[i] = rawToPercent(v)
	}
	return domain.Volumes{Muted: muted, Channels: channels}, nil
}

// SetVolumes sets every channel of the default device.
func (p *PulseController) SetVolumes(ctx context.Context, device domain.Device, channels []float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw := make(proto.ChannelVolumes, len(channels))
	for i, c := range channels {
		raw[i] = percentToRaw(c)
	}

	var req proto.RequestArgs
	switch device {
	case domain.DeviceOutput:
		req = &proto.SetSinkVolume{SinkIndex: proto.Undefined, SinkName: defaultSink, ChannelVolumes: raw}
	case domain.DeviceInput:
		req = &proto.SetSourceVolume{SourceIndex: proto.Undefined, SourceName: defaultSource, ChannelVolumes: raw}
	default:
		return fmt.Errorf("unknown device %d", device)
	}
	if err := p.client.RawRequest(req, nil); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrApplyRejected, err)
	}
	return nil
}

// SetMuted mutes or unmutes the default device.
func (p *PulseController) SetMuted(ctx context.Context, device domain.Device, muted bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var req proto.RequestArgs
	switch device {
	case domain.DeviceOutput:
		req = &proto.SetSinkMute{SinkIndex: proto.Undefined, SinkName: defaultSink, Mute: muted}
	case domain.DeviceInput:
		req = &proto.SetSourceMute{SourceIndex: proto.Undefined, SourceName: defaultSource, Mute: muted}
	default:
		return fmt.Errorf("unknown device %d", device)
	}
	if err := p.client.RawRequest(req, nil); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrApplyRejected, err)
	}
	return nil
}

// Close disconnects from the sound server.
func (p *PulseController) Close() error {
	p.client.Close()
	return nil
}
