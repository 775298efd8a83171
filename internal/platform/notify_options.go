package platform

import "time"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// Category is a freedesktop category hint such as "transfer.complete".
	Category string
	// Timeout is how long the notification stays visible. Zero means
	// DefaultTimeout.
	Timeout time.Duration
}

// AppName is reported to notification daemons as the sending application.
const AppName = "Sketchpad"

// DefaultTimeout applies when Options.Timeout is zero.
const DefaultTimeout = 5 * time.Second

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return DefaultTimeout
	}
	return o.Timeout
}
