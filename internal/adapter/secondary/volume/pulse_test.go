package volume

import (
	"context"
	"errors"
	"testing"

	"github.com/jfreymuth/pulse/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volume-ctl/internal/domain"
)

// fakeServer answers requests the way a sound server with one sink and one source would.
type fakeServer struct {
	sink, source proto.ChannelVolumes
	sinkMuted    bool
	sourceMuted  bool
	err          error
	requests     []proto.RequestArgs
	closed       bool
}

func (f *fakeServer) RawRequest(cmd proto.RequestArgs, rpl proto.Reply) error {
	f.requests = append(f.requests, cmd)
	if f.err != nil {
		return f.err
	}
	switch req := cmd.(type) {
	case *proto.GetSinkInfo:
		info := rpl.(*proto.GetSinkInfoReply)
		info.SinkName = "alsa_output.pci"
		info.ChannelVolumes = f.sink
		info.Mute = f.sinkMuted
	case *proto.GetSourceInfo:
		info := rpl.(*proto.GetSourceInfoReply)
		info.SourceName = "alsa_input.pci"
		info.ChannelVolumes = f.source
		info.Mute = f.sourceMuted
	case *proto.SetSinkVolume:
		f.sink = req.ChannelVolumes
	case *proto.SetSourceVolume:
		f.source = req.ChannelVolumes
	case *proto.SetSinkMute:
		f.sinkMuted = req.Mute
	case *proto.SetSourceMute:
		f.sourceMuted = req.Mute
	}
	return nil
}

func (f *fakeServer) Close() { f.closed = true }

func TestPulseController_Volumes(t *testing.T) {
	srv := &fakeServer{
		sink:        proto.ChannelVolumes{0x8000, 0x10000},
		source:      proto.ChannelVolumes{0x4000},
		sourceMuted: true,
	}
	ctrl := &PulseController{client: srv}

	out, err := ctrl.Volumes(context.Background(), domain.DeviceOutput)
	require.NoError(t, err)
	assert.Equal(t, domain.Volumes{Channels: []float64{50, 100}}, out)

	in, err := ctrl.Volumes(context.Background(), domain.DeviceInput)
	require.NoError(t, err)
	assert.Equal(t, domain.Volumes{Muted: true, Channels: []float64{25}}, in)

	sinkReq, ok := srv.requests[0].(*proto.GetSinkInfo)
	require.True(t, ok)
	assert.Equal(t, "@DEFAULT_SINK@", sinkReq.SinkName)
	assert.Equal(t, uint32(proto.Undefined), sinkReq.SinkIndex)
}

func TestPulseController_SetVolumesAndMute(t *testing.T) {
	srv := &fakeServer{sink: proto.ChannelVolumes{0, 0}, source: proto.ChannelVolumes{0}}
	ctrl := &PulseController{client: srv}
	ctx := context.Background()

	require.NoError(t, ctrl.SetVolumes(ctx, domain.DeviceOutput, []float64{100, 125}))
	require.NoError(t, ctrl.SetMuted(ctx, domain.DeviceOutput, true))
	require.NoError(t, ctrl.SetVolumes(ctx, domain.DeviceInput, []float64{50}))
	require.NoError(t, ctrl.SetMuted(ctx, domain.DeviceInput, true))

	assert.Equal(t, proto.ChannelVolumes{0x10000, 0x14000}, srv.sink)
	assert.True(t, srv.sinkMuted)
	assert.Equal(t, proto.ChannelVolumes{0x8000}, srv.source)
	assert.True(t, srv.sourceMuted)
}

func TestPulseController_Errors(t *testing.T) {
	srv := &fakeServer{err: errors.New("No such entity")}
	ctrl := &PulseController{client: srv}
	ctx := context.Background()

	_, err := ctrl.Volumes(ctx, domain.DeviceOutput)
	assert.ErrorIs(t, err, domain.ErrDeviceUnavailable)

	err = ctrl.SetVolumes(ctx, domain.DeviceInput, []float64{10})
	assert.ErrorIs(t, err, domain.ErrApplyRejected)

	err = ctrl.SetMuted(ctx, domain.DeviceOutput, false)
	assert.ErrorIs(t, err, domain.ErrApplyRejected)
}

func TestPulseController_NoChannels(t *testing.T) {
	ctrl := &PulseController{client: &fakeServer{}}

	_, err := ctrl.Volumes(context.Background(), domain.DeviceInput)
	assert.ErrorIs(t, err, domain.ErrDeviceUnavailable)
}

func TestPulseController_CanceledContext(t *testing.T) {
	srv := &fakeServer{}
	ctrl := &PulseController{client: srv}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ctrl.Volumes(ctx, domain.DeviceOutput)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, srv.requests)
}

func TestPulseController_Close(t *testing.T) {
	srv := &fakeServer{}
	ctrl := &PulseController{client: srv}

	require.NoError(t, ctrl.Close())
	assert.True(t, srv.closed)
}
