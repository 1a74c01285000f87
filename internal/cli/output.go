package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const (
	ExitSuccess      = 0
	ExitFailure      = 1 // validation failed, slug drift, nothing found
	ExitCommandError = 2 // bad flags, unreadable configuration or document
)

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code    int
	Message string
	Err     error
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

func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// ExitCode returns the exit code for err. Errors that are not an *ExitError
// exit with ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Response is the envelope of every JSON output.
type Response struct {
	Status string         `json:"status"`
	Data   any            `json:"data,omitempty"`
	Error  *ResponseError `json:"error,omitempty"`
}

type ResponseError struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type formatter struct {
	format string
	w      io.Writer
}

func newFormatter(opts *RootOptions, w io.Writer) *formatter {
	return &formatter{format: opts.Format, w: w}
}

func (f *formatter) isJSON() bool {
	return f.format == "json"
}

// Success writes data as JSON, or calls text to print it otherwise.
func (f *formatter) Success(data any, text func(w io.Writer) error) error {
	if f.isJSON() {
		return f.encode(Response{Status: "ok", Data: data})
	}
	return text(f.w)
}

// Failure reports err in the configured format and returns an *ExitError
// with code so the process exits non-zero.
func (f *formatter) Failure(code int, err error, details any, text func(w io.Writer) error) error {
	if f.isJSON() {
		if encErr := f.encode(Response{
			Status: "error",
			Error:  &ResponseError{Message: err.Error(), Details: details},
		}); encErr != nil {
			return encErr
		}
	} else if text != nil {
		if textErr := text(f.w); textErr != nil {
			return textErr
		}
	}
	return WrapExitError(code, "command failed", err)
}

func (f *formatter) encode(v any) error {
	enc := json.NewEncoder(f.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
