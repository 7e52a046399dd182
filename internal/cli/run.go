package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/rotate/internal/lines"
	"github.com/roach88/rotate/internal/store"
	"github.com/roach88/rotate/internal/transform"
)

// newLogger returns a text logger on w at Info, or Debug when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

func runTransform(cmd *cobra.Command, opts *RootOptions, inputPath string) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	// Fail before producing any output if the input cannot be read.
	info, err := os.Stat(inputPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open input file", err)
	}
	if info.IsDir() {
		return NewExitError(ExitCommandError, fmt.Sprintf("input path %s is a directory", inputPath))
	}
	f, err := os.Open(inputPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open input file", err)
	}
	defer f.Close()

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var run *store.RunWriter
	if opts.Database != "" {
		logger.Debug("opening database", "path", opts.Database)
		st, err := store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing database", "error", closeErr)
			}
		}()

		ids := opts.RunIDs
		if ids == nil {
			ids = store.UUIDv7Generator{}
		}
		run, err = st.BeginRun(ctx, ids.Generate(), inputPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to start run", err)
		}
		// No-op once the run is finished; discards partial runs otherwise.
		defer run.Abort()
	}

	reader := lines.NewReader(f)
	t := transform.New(transform.WithLogger(logger))
	out := NewOutputWriter(opts.Format, cmd.OutOrStdout())

	headerEmitted := false
	for o := range t.Stream(reader.All()) {
		if err := ctx.Err(); err != nil {
			return WrapExitError(ExitFailure, "run interrupted", err)
		}
		if err := out.Write(o); err != nil {
			return WrapExitError(ExitFailure, "failed to write output", err)
		}
		if o.Header {
			headerEmitted = true
			continue
		}
		if run != nil {
			if err := run.Write(ctx, o.Record); err != nil {
				return WrapExitError(ExitFailure, "failed to record output", err)
			}
		}
	}
	if err := reader.Err(); err != nil {
		return WrapExitError(ExitFailure, "failed to read input", err)
	}

	stats := t.Stats()
	attrs := []any{
		"input", inputPath,
		"lines", reader.Count(),
		"records", stats.Records,
		"valid", stats.Valid,
		"invalid", stats.Invalid,
	}
	if run != nil {
		if err := run.Finish(ctx, headerEmitted, stats); err != nil {
			return WrapExitError(ExitFailure, "failed to record run", err)
		}
		attrs = append(attrs, "run_id", run.ID())
	}
	logger.Info("run complete", attrs...)

	return nil
}
