//go:build windows

// Package stderr is a no-op on Windows, whose audio backends do not write
// to the console.
package stderr

import "os"

// Capture does nothing on Windows.
type Capture struct{}

// Start returns a nil capture, which is safe to use.
func Start() (*Capture, error) {
	return nil, nil //nolint:nilnil // nil capture is valid
}

// Drain never yields lines.
func (c *Capture) Drain(func(string)) int { return 0 }

// WriteOriginal writes to stderr.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop does nothing.
func (c *Capture) Stop() {}
