package output

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// labeled is implemented by errors that point at the offending input.
type labeled interface {
	error
	Label() string
	Span() string
}

// LogReporter is the diagnostics side channel. Reports are shown to the user on
// the error stream and recorded in the log; they never fail the pipeline.
type LogReporter struct {
	dev    *Device
	logger zerolog.Logger
}

// NewLogReporter creates a reporter that writes through dev.
func NewLogReporter(dev *Device, logger zerolog.Logger) *LogReporter {
	return &LogReporter{dev: dev, logger: logger}
}

// InputError reports a recoverable problem with user input.
func (r *LogReporter) InputError(err error) {
	r.logger.Warn().Err(err).Msg("invalid input")
	r.print(err)
}

// Unexpected reports an operational failure that the caller has chosen to survive.
func (r *LogReporter) Unexpected(err error) {
	r.logger.Error().Err(err).Msg("unexpected error")
	r.print(err)
}

func (r *LogReporter) print(err error) {
	_ = r.dev.Do(func(_, errOut io.Writer) error {
		_, werr := io.WriteString(errOut, FormatError(lipgloss.NewRenderer(errOut), err))
		return werr
	})
}

// FormatError renders err for the terminal, including the label of labeled errors.
func FormatError(re *lipgloss.Renderer, err error) string {
	prefix := re.NewStyle().Bold(true).Foreground(lipgloss.Color("9")).Render("error:")
	var l labeled
	if !errors.As(err, &l) {
		return fmt.Sprintf("%s %s\n", prefix, err)
	}

	arrow := re.NewStyle().Foreground(lipgloss.Color("12")).Render("-->")
	label := re.NewStyle().Foreground(lipgloss.Color("9")).Render(l.Label())
	return fmt.Sprintf("%s %s\n  %s %s\n      %s\n", prefix, l.Error(), arrow, l.Span(), label)
}
