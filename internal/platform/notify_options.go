package platform

import "time"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName identifies the sender. Empty means "rasterpaint".
	AppName string
	// IconPath, when non-empty, points to an image file shown with the
	// notification where supported.
	IconPath string
	// Timeout is how long the notification stays up. Zero lets the server
	// decide.
	Timeout time.Duration
}

func (o Options) appName() string {
	if o.AppName == "" {
		return "rasterpaint"
	}
	return o.AppName
}
