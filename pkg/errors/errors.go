package errors

import (
	"fmt"
	"strings"
)

// ConfigurationError reports a working directory that could not be prepared.
type ConfigurationError struct {
	Path    string
	Message string
	Err     error
}

// NewConfigurationError constructs a ConfigurationError.
func NewConfigurationError(path, message string, err error) error {
	return &ConfigurationError{Path: path, Message: message, Err: err}
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ConfigurationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures invalid invocation options.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// UnknownReportError lists requested report kinds that have no registered generator.
type UnknownReportError struct {
	Names []string
}

// NewUnknownReportError constructs an UnknownReportError.
func NewUnknownReportError(names ...string) error {
	return &UnknownReportError{Names: append([]string(nil), names...)}
}

func (e *UnknownReportError) Error() string {
	if e == nil {
		return ""
	}
	if len(e.Names) == 1 {
		return fmt.Sprintf("unknown report kind %q", e.Names[0])
	}
	quoted := make([]string, len(e.Names))
	for i, name := range e.Names {
		quoted[i] = fmt.Sprintf("%q", name)
	}
	return fmt.Sprintf("unknown report kinds %s", strings.Join(quoted, ", "))
}

// GenerationError represents a failure raised by a report generator.
type GenerationError struct {
	Report string
	Err    error
}

// NewGenerationError constructs a GenerationError.
func NewGenerationError(report string, err error) error {
	return &GenerationError{Report: report, Err: err}
}

func (e *GenerationError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("report %s failed: %v", e.Report, e.Err)
}

// Unwrap exposes the root error.
func (e *GenerationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ActivationError indicates the project's compiled output could not be made visible.
type ActivationError struct {
	Path string
	Err  error
}

// NewActivationError constructs an ActivationError for the given path.
func NewActivationError(path string, err error) error {
	return &ActivationError{Path: path, Err: err}
}

func (e *ActivationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Path != "" {
		return fmt.Sprintf("activation error [%s]: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("activation error: %v", e.Err)
}

// Unwrap exposes the underlying error.
func (e *ActivationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BuildStoppageError is the single fatal signal handed back to the host build tool.
type BuildStoppageError struct {
	Stage string
	Err   error
}

// NewBuildStoppageError wraps err as a build stoppage raised during stage.
func NewBuildStoppageError(stage string, err error) error {
	return &BuildStoppageError{Stage: stage, Err: err}
}

func (e *BuildStoppageError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("report generation stopped during %s: %v", e.Stage, e.Err)
}

// Unwrap exposes the root error.
func (e *BuildStoppageError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
