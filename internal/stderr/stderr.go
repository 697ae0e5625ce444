//go:build !windows

// Package stderr captures output that C libraries (ALSA through the audio
// backend) write straight to file descriptor 2, which would otherwise tear
// through the terminal UI.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"syscall"

	"github.com/llehouerou/loopdeck/internal/spsc"
)

// Capacity is the number of captured lines held until drained.
const Capacity = 128

// Capture redirects fd 2 into a pipe until Stop.
type Capture struct {
	orig  int
	read  *os.File
	write *os.File
	lines *spsc.Consumer[string]
	done  chan struct{}
}

// Start begins capturing. Call it before the audio device is opened. On
// error nothing is redirected and the program can continue uncaptured.
func Start() (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		_ = syscall.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	tx, rx := spsc.New[string](Capacity)
	c := &Capture{orig: orig, read: r, write: w, lines: rx, done: make(chan struct{})}
	go c.pump(tx)
	return c, nil
}

// pump is the single producer of captured lines. Lines that do not fit are
// dropped.
func (c *Capture) pump(tx *spsc.Producer[string]) {
	defer close(c.done)
	scanner := bufio.NewScanner(c.read)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			_ = tx.Push(line)
		}
	}
}

// Drain hands every captured line to fn and returns how many there were.
// It must only be called from one goroutine.
func (c *Capture) Drain(fn func(string)) int {
	if c == nil {
		return 0
	}
	n := 0
	for {
		line, err := c.lines.Pop()
		if err != nil {
			return n
		}
		fn(line)
		n++
	}
}

// WriteOriginal writes to the terminal's stderr, bypassing the capture.
func (c *Capture) WriteOriginal(msg string) {
	if c == nil {
		_, _ = os.Stderr.WriteString(msg)
		return
	}
	_, _ = syscall.Write(c.orig, []byte(msg))
}

// Stop restores fd 2 and waits for the reader to finish.
func (c *Capture) Stop() {
	if c == nil {
		return
	}
	_ = syscall.Dup2(c.orig, int(os.Stderr.Fd()))
	_ = syscall.Close(c.orig)
	c.write.Close()
	<-c.done
	c.read.Close()
}
