package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/streamtable/internal/cli/pagination"
	"github.com/rshade/streamtable/internal/config"
	"github.com/rshade/streamtable/internal/engine/batch"
	"github.com/rshade/streamtable/internal/logging"
	"github.com/rshade/streamtable/internal/output"
	"github.com/rshade/streamtable/internal/pager"
	"github.com/rshade/streamtable/internal/tableview"
	"github.com/rshade/streamtable/internal/value"
)

// NewTableCmd creates the table command, which renders the input stream as a
// sequence of tables of at most page-size rows each.
func NewTableCmd() *cobra.Command {
	flags := pagination.NewTableParams()
	var (
		precision   int
		width       int
		groupDigits bool
	)

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Render a record stream as paged tables",
		Long: `Read values from the input and print them as tables, one table per page of rows.

Rows are numbered from --start-number (default 0) and numbering continues across
tables. An invalid --start-number is reported and numbering starts at 0.
Malformed input items and write failures are reported without stopping the output.`,
		Example: `  # Page NDJSON from stdin
  cat events.ndjson | streamtable table

  # Start numbering at 500 with 50 rows per table
  streamtable table --input events.ndjson --start-number 500 --page-size 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params := *flags
			params.StartNumberSet = cmd.Flags().Changed("start-number")
			if cmd.Flags().Changed("precision") {
				params.SetPrecision(precision)
			}
			if cmd.Flags().Changed("width") {
				params.SetWidth(width)
			}
			if cmd.Flags().Changed("group-digits") {
				params.SetGroupDigits(groupDigits)
			}
			return executeTable(cmd, params)
		},
	}

	cmd.Flags().StringVar(&flags.StartNumber, "start-number", "",
		"row number of the first value (non-negative integer)")
	cmd.Flags().IntVar(&flags.PageSize, "page-size", 0,
		fmt.Sprintf("rows per table, %d-%d (0 = config default)", pagination.MinPageSize, pagination.MaxPageSize))
	cmd.Flags().StringVarP(&flags.Input, "input", "i", "", "input file (default stdin)")
	cmd.Flags().StringVarP(&flags.Format, "format", "f", "", "input format: ndjson, yaml, or lines")
	cmd.Flags().StringVar(&flags.Style, "style", "",
		"table border: rounded, normal, ascii, markdown, or hidden")
	cmd.Flags().IntVar(&width, "width", 0, "maximum table width (0 = terminal width)")
	cmd.Flags().BoolVar(&groupDigits, "group-digits", false, "group digits of numbers with separators")
	cmd.Flags().IntVar(&precision, "precision", tableview.DefaultPrecision,
		"digits after the decimal point for floats (-1 = shortest)")

	return cmd
}

func executeTable(cmd *cobra.Command, params pagination.TableParams) error {
	ctx := cmd.Context()
	log := logging.ComponentLogger(*logging.FromContext(ctx), "table")

	params.ApplyConfig(config.GetGlobalConfig().Table)
	if err := params.Validate(); err != nil {
		return &ExitError{Code: ExitUsage, Err: err}
	}
	cmd.SilenceUsage = true

	dev := deviceFor(cmd)
	reporter := output.NewLogReporter(dev, logging.ComponentLogger(*logging.FromContext(ctx), "reporter"))
	sink, err := output.NewTableWriter(dev, params.WriterOptions())
	if err != nil {
		return &ExitError{Code: ExitUsage, Err: err}
	}

	in, closeInput, err := openInput(cmd, params)
	if err != nil {
		return err
	}
	defer closeInput()

	// Reads on an idle stdin ignore ctx; the wrapper lets cancellation end the producer.
	dec, err := value.NewDecoder(params.InputFormat(), value.NewContextReader(ctx, in))
	if err != nil {
		return &ExitError{Code: ExitUsage, Err: err}
	}

	startRow := pager.ResolveStartRow(params.StartNumber, params.StartNumberSet, reporter)
	log.Debug().Ctx(ctx).
		Uint64("start_row", startRow).
		Int("page_size", params.PageSize).
		Str("format", params.Format).
		Msg("rendering input")

	values := make(chan value.Value, params.PageSize)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(values)
		return value.Stream(gctx, dec, values, reporter.Unexpected)
	})

	var stats pager.Stats
	g.Go(func() error {
		var runErr error
		stats, runErr = pager.Run[value.Value](
			gctx,
			batch.NewChannelSource[value.Value](values),
			tableview.NewBuilder(params.CellFormat()),
			sink,
			reporter,
			pager.Options{PageSize: params.PageSize, StartRow: startRow},
		)
		return runErr
	})

	if err = g.Wait(); err != nil {
		log.Debug().Ctx(ctx).Err(err).Msg("rendering stopped")
		return err
	}

	summary := pagination.NewPageSummary(params.PageSize, startRow, stats.Rows)
	log.Info().Ctx(ctx).
		Int("pages", summary.Pages).
		Int("rows", summary.Rows).
		Uint64("first_row", summary.FirstRow).
		Uint64("last_row", summary.LastRow).
		Int("tables", stats.Writes).
		Int("write_errors", stats.WriteErrors).
		Msg("table finished")

	return nil
}

// openInput returns the reader for the configured input and a function that closes it.
func openInput(cmd *cobra.Command, params pagination.TableParams) (io.Reader, func(), error) {
	if params.ReadsStdin() {
		return cmd.InOrStdin(), func() {}, nil
	}

	f, err := os.Open(params.Input)
	if err != nil {
		return nil, nil, fmt.Errorf("opening input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
