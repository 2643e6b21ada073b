// Package platform wraps desktop services of the host system.
package platform

// AppName is reported to the notification service.
const AppName = "annotator"

// Options configures how a notification is displayed.
type Options struct {
	// IconPath is an image file shown with the notification where supported.
	IconPath string
	// Timeout in milliseconds; zero leaves it to the server.
	Timeout int32
}
