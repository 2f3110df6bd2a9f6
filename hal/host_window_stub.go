//go:build !tinygo && !cgo

package hal

import "fmt"

func RunWindow(_ NewApp, _ HostConfig) error {
	return fmt.Errorf("window mode requires cgo (build/run with CGO_ENABLED=1): %w", ErrNotImplemented)
}
