//go:build !linux

package platform

// Notify does nothing where no notification service is wired.
func Notify(title, body string, opts Options) error {
	return nil
}
