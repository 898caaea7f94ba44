package pager

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rshade/streamtable/internal/engine/batch"
	"github.com/rshade/streamtable/internal/logging"
	"github.com/rshade/streamtable/internal/tableview"
)

// StartNumberArg is the name of the starting-row argument in diagnostics.
const StartNumberArg = "--start-number"

// ErrNilDependency is returned when Run is called without a builder, sink, or reporter.
var ErrNilDependency = errors.New("pager: builder, sink, and reporter are required")

// Builder turns a non-empty window into a view numbered from startRow.
// It returns false when the window has nothing to render.
type Builder[T any] interface {
	Build(window []T, startRow uint64) (*tableview.TableView, bool)
}

// Sink writes a view to the shared output device, holding it for the whole write.
type Sink interface {
	Write(view *tableview.TableView) error
}

// Reporter is the diagnostics side channel.
type Reporter interface {
	InputError(err error)
	Unexpected(err error)
}

// Options configures a run.
type Options struct {
	// PageSize is the number of values per window. Zero means batch.DefaultBatchSize.
	PageSize int

	// StartRow is the row number of the first value.
	StartRow uint64
}

// Stats summarises a finished run.
type Stats struct {
	Windows     int
	Views       int
	Writes      int
	WriteErrors int
	Rows        int
	NextRow     uint64
}

// Run pages src onto sink until the source is exhausted. Every iteration advances
// the row offset by the page size, whether or not the window produced a view.
// The loop ends after the first window shorter than the page size.
//
// Write failures and source failures are passed to r.Unexpected. The returned
// error is non-nil only for invalid arguments or when ctx is done, in which case
// the window being filled is dropped.
func Run[T any](
	ctx context.Context,
	src batch.Source[T],
	b Builder[T],
	sink Sink,
	r Reporter,
	opts Options,
) (Stats, error) {
	stats := Stats{NextRow: opts.StartRow}
	if b == nil || sink == nil || r == nil {
		return stats, ErrNilDependency
	}

	pageSize := opts.PageSize
	if pageSize == 0 {
		pageSize = batch.DefaultBatchSize
	}
	batcher, err := batch.NewBatcher(src, pageSize)
	if err != nil {
		return stats, err
	}

	log := logging.ComponentLogger(*logging.FromContext(ctx), "pager")
	progress := batch.NewProgress(pageSize)
	startRow := opts.StartRow
	saturated := false

	for {
		window, werr := batcher.NextWindow(ctx)
		if werr != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				log.Debug().Ctx(ctx).Int("dropped", len(window)).Msg("paging cancelled")
				return stats, ctxErr
			}
			r.Unexpected(werr)
		}
		stats.Windows++
		progress.AddProcessed(len(window))

		if len(window) > 0 {
			stats.Rows += len(window)
			if view, ok := b.Build(window, startRow); ok {
				stats.Views++
				if err := sink.Write(view); err != nil {
					stats.WriteErrors++
					r.Unexpected(err)
				} else {
					stats.Writes++
				}
			}
		}

		logPage(ctx, log, startRow, len(window))

		next := tableview.AddRows(startRow, uint64(pageSize))
		if next-startRow != uint64(pageSize) && !saturated {
			saturated = true
			log.Warn().Ctx(ctx).Uint64("row", startRow).Msg("row offset saturated")
		}
		startRow = next
		stats.NextRow = startRow

		if len(window) < pageSize {
			break
		}
	}

	snap := progress.Snapshot()
	log.Debug().Ctx(ctx).
		Int("windows", stats.Windows).
		Int("rows", stats.Rows).
		Int("writes", stats.Writes).
		Int("write_errors", stats.WriteErrors).
		Dur("elapsed", snap.ElapsedTime).
		Float64("rows_per_second", snap.ItemsPerSecond).
		Msg("paging finished")

	return stats, nil
}

func logPage(ctx context.Context, log zerolog.Logger, startRow uint64, n int) {
	if n == 0 {
		log.Debug().Ctx(ctx).Uint64("start_row", startRow).Msg("empty window")
		return
	}
	log.Debug().Ctx(ctx).
		Uint64("start_row", startRow).
		Uint64("end_row", tableview.AddRows(startRow, uint64(n-1))).
		Int("rows", n).
		Msg("window processed")
}

// ResolveStartRow turns the optional starting-row argument into a row offset.
// An absent argument yields 0. A value that is not a non-negative integer is
// reported once through r and also yields 0.
func ResolveStartRow(raw string, set bool, r Reporter) uint64 {
	if !set {
		return 0
	}
	n, err := ParseStartRow(raw)
	if err != nil {
		r.InputError(err)
		return 0
	}
	return n
}

// ParseStartRow parses a starting row number.
func ParseStartRow(raw string) (uint64, error) {
	trimmed := strings.TrimSpace(raw)
	n, err := strconv.ParseUint(trimmed, 10, 64)
	if err != nil {
		return 0, &LabeledError{
			Msg:   "Expected a row number",
			Text:  "expected a row number",
			Arg:   StartNumberArg,
			Input: raw,
			Err:   fmt.Errorf("parsing %q: %w", raw, err),
		}
	}
	return n, nil
}
