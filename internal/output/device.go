// Package output owns the shared terminal device, the table sink that writes
// views to it, and the diagnostics reporter that shares it.
package output

import (
	"io"
	"sync"

	"golang.org/x/term"
)

// Device is the process-wide output device. At most one writer holds it at a time.
type Device struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
}

// NewDevice wraps the standard output and error streams of a process.
func NewDevice(out, errOut io.Writer) *Device {
	return &Device{out: out, errOut: errOut}
}

// Do runs fn with exclusive access to the device. The lock is released on every
// exit path, including a panic in fn.
func (d *Device) Do(fn func(out, errOut io.Writer) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return fn(d.out, d.errOut)
}

// ErrWriter returns a writer to the error stream whose writes hold the device lock.
// When the stream is a file the writer also exposes its Fd, so callers can still
// detect a terminal.
func (d *Device) ErrWriter() io.Writer {
	return d.locked(d.errOut, true)
}

// OutWriter returns a writer to the output stream whose writes hold the device lock.
func (d *Device) OutWriter() io.Writer {
	return d.locked(d.out, false)
}

func (d *Device) locked(target io.Writer, stderr bool) io.Writer {
	w := lockedWriter{dev: d, stderr: stderr}
	if f, ok := target.(fdWriter); ok {
		return lockedFile{lockedWriter: w, fd: f.Fd()}
	}
	return w
}

type lockedWriter struct {
	dev    *Device
	stderr bool
}

func (w lockedWriter) Write(p []byte) (int, error) {
	var n int
	err := w.dev.Do(func(out, errOut io.Writer) error {
		target := out
		if w.stderr {
			target = errOut
		}
		var err error
		n, err = target.Write(p)
		return err
	})
	return n, err
}

type lockedFile struct {
	lockedWriter
	fd uintptr
}

// Fd returns the descriptor of the underlying file.
func (w lockedFile) Fd() uintptr {
	return w.fd
}

type fdWriter interface {
	Fd() uintptr
}

// TerminalWidth returns the column count of w when it is a terminal, or 0.
func TerminalWidth(w io.Writer) int {
	f, ok := w.(fdWriter)
	if !ok {
		return 0
	}
	fd := int(f.Fd()) //nolint:gosec // file descriptors fit in int
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}
