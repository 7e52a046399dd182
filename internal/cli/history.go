package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/rotate/internal/config"
	"github.com/roach88/rotate/internal/store"
	"github.com/roach88/rotate/internal/transform"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	RunID    string
	RecordID string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded runs",
		Long: `List the runs recorded in a run history database, or re-emit the
output of a single run.

Without flags, prints one line per run in the order they were recorded.
With --run, prints that run's output exactly as it was first written.
With --record, prints every record emitted under that CSV id, oldest run
first.

Example:
  rotate history --db ./rotate.db
  rotate history --db ./rotate.db --run 0192f3a4-...
  rotate history --db ./rotate.db --record 42`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.RunID, "run", "", "run id to re-emit")
	cmd.Flags().StringVar(&opts.RecordID, "record", "", "CSV id to look up across runs")
	cmd.MarkFlagsMutuallyExclusive("run", "record")

	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	if opts.Database == "" {
		return NewExitError(ExitCommandError, "history requires a database (--db or database in config)")
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.RunID != "" {
		return replayRun(ctx, st, opts.RunID, NewOutputWriter(opts.Format, cmd.OutOrStdout()))
	}
	if cmd.Flags().Changed("record") {
		return findRecords(ctx, st, opts.RecordID, opts.Format, cmd.OutOrStdout())
	}

	runs, err := st.ListRuns(ctx)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to list runs", err)
	}
	if opts.Format == config.FormatJSON {
		return writeResponse(cmd.OutOrStdout(), runs)
	}
	return writeRunTable(cmd.OutOrStdout(), runs)
}

// replayRun writes a recorded run's output through out, header first if
// the run emitted one.
func replayRun(ctx context.Context, st *store.Store, id string, out OutputWriter) error {
	run, err := st.GetRun(ctx, id)
	if errors.Is(err, store.ErrRunNotFound) {
		return WrapExitError(ExitCommandError, "unknown run", err)
	}
	if err != nil {
		return WrapExitError(ExitFailure, "failed to read run", err)
	}

	records, err := st.ReadRecords(ctx, run.ID)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to read records", err)
	}

	if run.HeaderEmitted {
		if err := out.Write(transform.Output{Header: true}); err != nil {
			return WrapExitError(ExitFailure, "failed to write output", err)
		}
	}
	for _, rec := range records {
		if err := out.Write(transform.Output{Record: rec}); err != nil {
			return WrapExitError(ExitFailure, "failed to write output", err)
		}
	}
	return nil
}

// findRecords lists every recorded occurrence of a CSV id.
func findRecords(ctx context.Context, st *store.Store, recordID, format string, w io.Writer) error {
	refs, err := st.FindRecords(ctx, recordID)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to find records", err)
	}
	if format == config.FormatJSON {
		return writeResponse(w, refs)
	}

	if len(refs) == 0 {
		_, err := fmt.Fprintf(w, "No records with id %q.\n", recordID)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSEQ\tRECORD")
	for _, ref := range refs {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", ref.RunID, ref.Seq, ref.Record)
	}
	return tw.Flush()
}

func writeRunTable(w io.Writer, runs []store.Run) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tID\tINPUT\tLINES\tRECORDS\tVALID\tINVALID")
	for _, r := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\t%d\n",
			r.Seq, r.ID, r.InputPath,
			r.Stats.Lines, r.Stats.Records, r.Stats.Valid, r.Stats.Invalid)
	}
	return tw.Flush()
}
