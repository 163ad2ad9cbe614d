package usecase

import (
	"context"
	"errors"
	"fmt"

	"volume-ctl/internal/domain"
	"volume-ctl/internal/logging"
)

// VolumeUseCase is the primary port for volume operations.
type VolumeUseCase interface {
	Execute(ctx context.Context, device domain.Device, cmd domain.Command) (domain.Volumes, error)
	Get(ctx context.Context, device domain.Device) (domain.Volumes, error)
}

// volumeInteractor implements VolumeUseCase.
// It depends only on domain layer and secondary ports.
type volumeInteractor struct {
	controller domain.VolumeController
	notifier   domain.Notifier
	service    *domain.VolumeService
}

// NewVolumeUseCase creates a new volume use case.
// Dependencies are injected (secondary ports).
func NewVolumeUseCase(
	controller domain.VolumeController,
	notifier domain.Notifier,
	service *domain.VolumeService,
) VolumeUseCase {
	return &volumeInteractor{
		controller: controller,
		notifier:   notifier,
		service:    service,
	}
}

// Get reads the current state of device without changing it.
func (u *volumeInteractor) Get(ctx context.Context, device domain.Device) (domain.Volumes, error) {
	v, err := u.controller.Volumes(ctx, device)
	if err != nil {
		return domain.Volumes{}, fmt.Errorf("get %s volume: %w", device, classify(err, domain.ErrDeviceUnavailable))
	}
	logging.Debugf("%s volume: %v (muted=%t)", device, v.Channels, v.Muted)
	return v, nil
}

// Execute applies cmd to device and shows a notification with the result.
// A failed notification is logged and does not fail the command.
func (u *volumeInteractor) Execute(ctx context.Context, device domain.Device, cmd domain.Command) (domain.Volumes, error) {
	current, err := u.Get(ctx, device)
	if err != nil {
		return domain.Volumes{}, err
	}

	next, err := u.service.Apply(current, cmd)
	if err != nil {
		return domain.Volumes{}, err
	}
	logging.Debugf("%s %s %g: %v -> %v (muted=%t)", device, cmd.Action, cmd.Amount, current.Channels, next.Channels, next.Muted)

	if err := u.controller.SetVolumes(ctx, device, next.Channels); err != nil {
		return domain.Volumes{}, fmt.Errorf("set %s volume: %w", device, classify(err, domain.ErrApplyRejected))
	}
	if err := u.controller.SetMuted(ctx, device, next.Muted); err != nil {
		return domain.Volumes{}, fmt.Errorf("mute/unmute %s: %w", device, classify(err, domain.ErrApplyRejected))
	}

	n := u.service.Notification(device, next)
	if err := u.notifier.Notify(ctx, n); err != nil {
		logging.Warnf("%v", domain.NotificationError(err))
	}
	return next, nil
}

// classify makes sure err carries one of the domain error kinds.
// Errors that an adapter did not classify are reported as fallback.
func classify(err error, fallback error) error {
	for _, kind := range []error{
		domain.ErrServerUnreachable,
		domain.ErrDeviceUnavailable,
		domain.ErrApplyRejected,
	} {
		if errors.Is(err, kind) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", fallback, err)
}
