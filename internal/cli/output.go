package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/rotate/internal/config"
	"github.com/roach88/rotate/internal/transform"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Runtime failure (read/write error, interrupted run, etc.)
	ExitCommandError = 2 // Command error (bad arguments, unreadable input, invalid config, etc.)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil and ExitFailure (1) if the error is not an
// ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputWriter renders transformer output in one of the configured formats.
type OutputWriter interface {
	Write(out transform.Output) error
}

// NewOutputWriter returns the OutputWriter for format, writing to w.
func NewOutputWriter(format string, w io.Writer) OutputWriter {
	if format == config.FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		return &jsonWriter{enc: enc}
	}
	return &csvWriter{w: w}
}

// csvWriter writes each output as one line, header included.
type csvWriter struct {
	w io.Writer
}

func (c *csvWriter) Write(out transform.Output) error {
	_, err := io.WriteString(c.w, out.String()+"\n")
	return err
}

// jsonWriter writes one JSON object per record. The header has no JSON
// rendering and is skipped.
type jsonWriter struct {
	enc *json.Encoder
}

func (j *jsonWriter) Write(out transform.Output) error {
	if out.Header {
		return nil
	}
	return j.enc.Encode(out.Record)
}

// CLIResponse is the JSON envelope for non-record command output.
type CLIResponse struct {
	Status string `json:"status"`         // "ok" or "error"
	Data   any    `json:"data,omitempty"` // success payload
}

// writeResponse writes data wrapped in an "ok" CLIResponse.
func writeResponse(w io.Writer, data any) error {
	return json.NewEncoder(w).Encode(CLIResponse{Status: "ok", Data: data})
}
