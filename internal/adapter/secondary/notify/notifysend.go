package notify

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"volume-ctl/internal/domain"
)

// Runner executes notify-send with the given arguments.
type Runner func(ctx context.Context, args ...string) error

// NotifySendNotifier implements domain.Notifier with the notify-send command.
type NotifySendNotifier struct {
	run Runner
}

// NewNotifySendNotifier creates a notify-send notifier.
// A nil runner executes the notify-send binary from PATH.
func NewNotifySendNotifier(run Runner) *NotifySendNotifier {
	if run == nil {
		run = execNotifySend
	}
	return &NotifySendNotifier{run: run}
}

func execNotifySend(ctx context.Context, args ...string) error {
	output, err := exec.CommandContext(ctx, "notify-send", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("notify-send failed: %w, output: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Notify sends a desktop notification.
func (s *NotifySendNotifier) Notify(ctx context.Context, n domain.Notification) error {
	return s.run(ctx, notifySendArgs(n)...)
}

func (s *NotifySendNotifier) Close() error {
	return nil
}

func notifySendArgs(n domain.Notification) []string {
	var args []string
	if n.AppName != "" {
		args = append(args, "--app-name="+n.AppName)
	}
	if n.Icon != "" {
		args = append(args, "--icon="+n.Icon)
	}
	if n.Timeout >= 0 {
		args = append(args, "--expire-time="+strconv.Itoa(int(n.Timeout)))
	}
	if n.ReplacesID != 0 {
		args = append(args, "--replace-id="+strconv.FormatUint(uint64(n.ReplacesID), 10))
	}
	args = append(args, "--transient")
	if n.HasProgress() {
		args = append(args, "--hint=int:value:"+strconv.Itoa(n.Progress))
	}
	if n.StackTag != "" {
		args = append(args, "--hint=string:x-dunst-stack-tag:"+n.StackTag)
	}
	if n.SoundName != "" {
		args = append(args, "--hint=string:sound-name:"+n.SoundName)
	}
	args = append(args, "--", n.Summary)
	if n.Body != "" {
		args = append(args, n.Body)
	}
	return args
}
