package output_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/streamtable/internal/output"
	"github.com/rshade/streamtable/internal/tableview"
)

// exclusiveWriter fails the test if two writes overlap.
type exclusiveWriter struct {
	holders atomic.Int32
	overlap atomic.Bool
	buf     bytes.Buffer
}

func (w *exclusiveWriter) Write(p []byte) (int, error) {
	if w.holders.Add(1) > 1 {
		w.overlap.Store(true)
	}
	defer w.holders.Add(-1)
	return w.buf.Write(p)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("device gone") }

func sampleView() *tableview.TableView {
	return &tableview.TableView{
		StartRow: 100,
		Headers:  []string{"name", "size"},
		Rows: []tableview.Row{
			{Index: 100, Cells: []string{"alpha", "1"}},
			{Index: 101, Cells: []string{"beta", ""}},
		},
	}
}

func TestDevice_SerializesWriters(t *testing.T) {
	w := &exclusiveWriter{}
	dev := output.NewDevice(w, w)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			target := dev.OutWriter()
			if i%2 == 0 {
				target = dev.ErrWriter()
			}
			for range 50 {
				_, err := target.Write([]byte("line\n"))
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	assert.False(t, w.overlap.Load())
	assert.Equal(t, 8*50, strings.Count(w.buf.String(), "line\n"))
}

func TestDevice_ReleasesOnPanic(t *testing.T) {
	dev := output.NewDevice(io.Discard, io.Discard)

	assert.Panics(t, func() {
		_ = dev.Do(func(io.Writer, io.Writer) error { panic("boom") })
	})

	called := false
	require.NoError(t, dev.Do(func(io.Writer, io.Writer) error {
		called = true
		return nil
	}))
	assert.True(t, called)
}

func TestDevice_WritersKeepFileDescriptor(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "stderr")
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	dev := output.NewDevice(&bytes.Buffer{}, f)

	errW, ok := dev.ErrWriter().(interface{ Fd() uintptr })
	require.True(t, ok, "error writer over a file exposes Fd")
	assert.Equal(t, f.Fd(), errW.Fd())

	_, ok = dev.OutWriter().(interface{ Fd() uintptr })
	assert.False(t, ok, "output writer over a buffer has no Fd")

	_, err = dev.ErrWriter().Write([]byte("logged\n"))
	require.NoError(t, err)
	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Equal(t, "logged\n", string(data))
}

func TestTerminalWidth_NonTerminal(t *testing.T) {
	assert.Equal(t, 0, output.TerminalWidth(&bytes.Buffer{}))
}

func TestTableWriter_Write(t *testing.T) {
	var out bytes.Buffer
	dev := output.NewDevice(&out, io.Discard)
	w, err := output.NewTableWriter(dev, output.TableWriterOptions{Style: output.StyleASCII})
	require.NoError(t, err)

	require.NoError(t, w.Write(sampleView()))

	text := out.String()
	for _, want := range []string{"#", "name", "size", "100", "101", "alpha", "beta"} {
		assert.Contains(t, text, want)
	}
	assert.Less(t, strings.Index(text, "alpha"), strings.Index(text, "beta"))
	assert.True(t, strings.HasSuffix(text, "\n"))
	assert.NotContains(t, text, "\x1b[", "no escape codes for non-terminal output")
}

func TestTableWriter_Styles(t *testing.T) {
	for _, style := range []string{"", output.StyleRounded, output.StyleNormal, output.StyleMarkdown, output.StyleHidden} {
		t.Run(style, func(t *testing.T) {
			var out bytes.Buffer
			w, err := output.NewTableWriter(output.NewDevice(&out, io.Discard), output.TableWriterOptions{Style: style})
			require.NoError(t, err)
			require.NoError(t, w.Write(sampleView()))
			assert.Contains(t, out.String(), "alpha")
		})
	}

	_, err := output.NewTableWriter(output.NewDevice(io.Discard, io.Discard), output.TableWriterOptions{Style: "fancy"})
	require.ErrorIs(t, err, output.ErrUnknownStyle)
	require.ErrorIs(t, output.ValidateStyle("fancy"), output.ErrUnknownStyle)
	require.NoError(t, output.ValidateStyle("MARKDOWN"))
}

func TestTableWriter_WidthLimit(t *testing.T) {
	var out bytes.Buffer
	w, err := output.NewTableWriter(output.NewDevice(&out, io.Discard), output.TableWriterOptions{
		Style: output.StyleASCII,
		Width: 30,
	})
	require.NoError(t, err)
	require.NoError(t, w.Write(sampleView()))

	for _, line := range strings.Split(strings.TrimRight(out.String(), "\n"), "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 30)
	}
}

func TestTableWriter_DeviceError(t *testing.T) {
	w, err := output.NewTableWriter(output.NewDevice(failingWriter{}, io.Discard), output.TableWriterOptions{})
	require.NoError(t, err)

	err = w.Write(sampleView())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing rows 100-101")
	assert.Contains(t, err.Error(), "device gone")
}

type testLabeled struct{}

func (testLabeled) Error() string { return "Expected a row number" }
func (testLabeled) Label() string { return "expected a row number" }
func (testLabeled) Span() string  { return "--start-number=abc" }

func TestLogReporter(t *testing.T) {
	var errOut, logs bytes.Buffer
	dev := output.NewDevice(io.Discard, &errOut)
	r := output.NewLogReporter(dev, zerolog.New(&logs))

	r.InputError(testLabeled{})
	r.Unexpected(errors.New("writing rows 100-199: broken pipe"))

	text := errOut.String()
	assert.Contains(t, text, "error: Expected a row number")
	assert.Contains(t, text, "--> --start-number=abc")
	assert.Contains(t, text, "expected a row number")
	assert.Contains(t, text, "error: writing rows 100-199: broken pipe")

	assert.Contains(t, logs.String(), `"level":"warn"`)
	assert.Contains(t, logs.String(), `"level":"error"`)
}

func TestFormatError_Plain(t *testing.T) {
	got := output.FormatError(lipgloss.NewRenderer(io.Discard), errors.New("boom"))
	assert.Equal(t, "error: boom\n", got)
}
