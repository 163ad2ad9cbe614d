package notify

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"

	"volume-ctl/internal/domain"
	"volume-ctl/internal/logging"
)

const (
	// DBusInterface is the notification interface name.
	DBusInterface = "org.freedesktop.Notifications"
	// DBusPath is the notification object path.
	DBusPath = "/org/freedesktop/Notifications"
	// DBusBusName is the bus name of the notification daemon.
	DBusBusName = "org.freedesktop.Notifications"
)

// DBusNotifier implements domain.Notifier by calling
// org.freedesktop.Notifications.Notify on the session bus.
// This is a secondary adapter.
type DBusNotifier struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// NewDBusNotifier opens a private connection to the session bus.
func NewDBusNotifier() (*DBusNotifier, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &DBusNotifier{conn: conn, obj: conn.Object(DBusBusName, DBusPath)}, nil
}

// Notify shows n, replacing the previous bubble with the same ReplacesID.
func (d *DBusNotifier) Notify(ctx context.Context, n domain.Notification) error {
	call := d.obj.CallWithContext(ctx, DBusInterface+".Notify", 0,
		n.AppName,
		n.ReplacesID,
		n.Icon,
		n.Summary,
		n.Body,
		[]string{},
		Hints(n),
		n.Timeout,
	)

	var id uint32
	if err := call.Store(&id); err != nil {
		return fmt.Errorf("failed to call Notify: %w", err)
	}
	logging.Debugf("notification %d shown: %s", id, n.Summary)
	return nil
}

// Close releases the bus connection.
func (d *DBusNotifier) Close() error {
	if d.conn == nil {
		return nil
	}
	return d.conn.Close()
}

// Hints builds the freedesktop hint map for n.
// "value" is the progress hint understood by dunst, mako, swaync and others.
func Hints(n domain.Notification) map[string]dbus.Variant {
	hints := map[string]dbus.Variant{
		"transient": dbus.MakeVariant(true),
	}
	if n.HasProgress() {
		hints["value"] = dbus.MakeVariant(int32(n.Progress))
	}
	if n.StackTag != "" {
		hints["x-dunst-stack-tag"] = dbus.MakeVariant(n.StackTag)
	}
	if n.SoundName != "" {
		hints["sound-name"] = dbus.MakeVariant(n.SoundName)
	}
	return hints
}
