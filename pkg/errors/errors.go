package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"
)

// ErrorCode represents a unique error code for categorizing errors
type ErrorCode string

const (
	// Configuration errors (2xxx)
	ErrCodeConfigInvalid ErrorCode = "GTE2001"
	ErrCodeConfigWrite   ErrorCode = "GTE2002"

	// Git errors (3xxx)
	ErrCodeGitLaunch      ErrorCode = "GTE3001"
	ErrCodeGitUnavailable ErrorCode = "GTE3002"

	// Change log errors (5xxx)
	ErrCodeChangeLogCorrupted ErrorCode = "GTE5001"
	ErrCodeChangeLogWrite     ErrorCode = "GTE5002"

	// Input errors (6xxx)
	ErrCodeInvalidInput ErrorCode = "GTE6001"

	// Credential errors (7xxx)
	ErrCodeCredentialStore ErrorCode = "GTE7001"

	// System errors (9xxx)
	ErrCodeInternal ErrorCode = "GTE9001"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityCritical ErrorSeverity = "CRITICAL" // Invocation cannot continue
	SeverityError    ErrorSeverity = "ERROR"    // Operation failed
	SeverityWarning  ErrorSeverity = "WARNING"  // Operation succeeded with issues
)

// AppError represents a structured application error with context
type AppError struct {
	Code        ErrorCode
	Message     string
	Severity    ErrorSeverity
	Context     map[string]interface{}
	Cause       error
	Stack       string
	Timestamp   time.Time
	Suggestions []string
}

// Error implements the error interface
func (e *AppError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s: %s", e.Code, e.Severity, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\nCaused by: %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\nSuggestions:")
		for i, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  %d. %s", i+1, suggestion))
		}
	}

	return b.String()
}

// Unwrap returns the cause of the error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError carrying the same code
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Severity:  SeverityError,
		Context:   make(map[string]interface{}),
		Stack:     captureStack(),
		Timestamp: time.Now(),
	}
}

// Wrap wraps an existing error with AppError
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}

	appErr := New(code, message)
	appErr.Cause = err

	// Carry over context from a wrapped AppError
	var inner *AppError
	if errors.As(err, &inner) {
		for k, v := range inner.Context {
			appErr.Context[k] = v
		}
	}

	return appErr
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithSeverity sets the error severity
func (e *AppError) WithSeverity(severity ErrorSeverity) *AppError {
	e.Severity = severity
	return e
}

// WithSuggestions adds recovery suggestions
func (e *AppError) WithSuggestions(suggestions ...string) *AppError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// captureStack captures the current stack trace
func captureStack() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])

	var b strings.Builder
	frames := runtime.CallersFrames(pcs[:n])

	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			b.WriteString(fmt.Sprintf("%s:%d %s\n", frame.File, frame.Line, frame.Function))
		}
		if !more {
			break
		}
	}

	return b.String()
}

// Common error constructors

// ConfigError creates an error for an unreadable or malformed config store
func ConfigError(path string, cause error) *AppError {
	return Wrap(cause, ErrCodeConfigInvalid, "Failed to load tracker configuration").
		WithSeverity(SeverityCritical).
		WithContext("path", path).
		WithSuggestions(
			fmt.Sprintf("Check that %s contains valid JSON", path),
			"Delete the file to regenerate the default configuration",
		)
}

// ChangeLogError creates an error for an unreadable or malformed change log
func ChangeLogError(path string, cause error) *AppError {
	return Wrap(cause, ErrCodeChangeLogCorrupted, "Failed to load recorded changes").
		WithSeverity(SeverityCritical).
		WithContext("path", path).
		WithSuggestions(
			fmt.Sprintf("Check that %s contains a valid JSON array", path),
		)
}

// GitLaunchError creates an error for a git invocation that could not be started
func GitLaunchError(args []string, cause error) *AppError {
	return Wrap(cause, ErrCodeGitLaunch, "Failed to execute git command").
		WithSeverity(SeverityCritical).
		WithContext("args", strings.Join(args, " ")).
		WithSuggestions(
			"Ensure git is installed and on your PATH",
			"Use --git-path to point at a git executable",
			"Use --backend native to run without the git executable",
		)
}

// InputError creates a user input validation error
func InputError(field, reason string) *AppError {
	return New(ErrCodeInvalidInput, fmt.Sprintf("Invalid %s: %s", field, reason)).
		WithContext("field", field).
		WithSeverity(SeverityWarning)
}

// GetErrorCode extracts the error code from an error
func GetErrorCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}
