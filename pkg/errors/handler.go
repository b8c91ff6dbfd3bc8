package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"sort"

	"github.com/sirupsen/logrus"
)

// ErrorHandler reports fatal errors to the user and the diagnostic log
type ErrorHandler struct {
	out io.Writer
	log logrus.FieldLogger
}

// NewErrorHandler creates a handler printing to out
func NewErrorHandler(out io.Writer, log logrus.FieldLogger) *ErrorHandler {
	return &ErrorHandler{out: out, log: log}
}

// Handle logs err with its code and context and prints a readable report
func (h *ErrorHandler) Handle(err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		appErr = Wrap(err, ErrCodeInternal, err.Error())
	}

	fields := logrus.Fields{
		"code":     appErr.Code,
		"severity": appErr.Severity,
	}
	for k, v := range appErr.Context {
		fields[k] = v
	}
	entry := h.log.WithFields(fields)
	if appErr.Cause != nil {
		entry = entry.WithError(appErr.Cause)
	}
	entry.Debug(appErr.Message)

	h.display(appErr)
}

func (h *ErrorHandler) display(err *AppError) {
	fmt.Fprintf(h.out, "Error [%s]: %s\n", err.Code, err.Message)

	if err.Cause != nil && err.Cause.Error() != err.Message {
		fmt.Fprintf(h.out, "  %v\n", err.Cause)
	}

	if len(err.Context) > 0 {
		keys := make([]string, 0, len(err.Context))
		for k := range err.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprintln(h.out, "\nContext:")
		for _, k := range keys {
			fmt.Fprintf(h.out, "  %s: %v\n", k, err.Context[k])
		}
	}

	if len(err.Suggestions) > 0 {
		fmt.Fprintln(h.out, "\nSuggestions:")
		for i, suggestion := range err.Suggestions {
			fmt.Fprintf(h.out, "  %d. %s\n", i+1, suggestion)
		}
	}
}
