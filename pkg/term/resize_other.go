//go:build !unix

package term

import "os"

// NotifyResize returns a nil channel, since resizes are not signaled on this
// platform.
func NotifyResize() (<-chan os.Signal, func()) {
	return nil, func() {}
}
