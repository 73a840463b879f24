package main

import (
	"errors"
	"fmt"

	reporterrors "github.com/alexisbeaulieu97/extreports/pkg/errors"
)

func newCommandError(operation, context string, cause error, suggestion string) error {
	return &commandError{operation: operation, context: context, cause: cause, suggestion: suggestion}
}

type commandError struct {
	operation  string
	context    string
	cause      error
	suggestion string
}

func (e *commandError) Error() string {
	if e.suggestion == "" {
		return fmt.Sprintf("Failed to %s: %s\n\nError: %v", e.operation, e.context, e.cause)
	}
	return fmt.Sprintf("Failed to %s: %s\n\nError: %v\n\nSuggestion: %s", e.operation, e.context, e.cause, e.suggestion)
}

func (e *commandError) Unwrap() error {
	return e.cause
}

// suggestionFor picks a hint for the most specific error in err's chain.
func suggestionFor(err error) string {
	var unknown *reporterrors.UnknownReportError
	var validation *reporterrors.ValidationError
	var configuration *reporterrors.ConfigurationError
	var activation *reporterrors.ActivationError
	var generation *reporterrors.GenerationError

	switch {
	case errors.As(err, &unknown):
		return "Run 'extreports list' to see the available report kinds."
	case errors.As(err, &validation):
		return "Check the named setting in your flags, SERENITY_* environment or extreports.yaml."
	case errors.As(err, &configuration):
		return "Set --output-directory or defaults.output_directory to a writable location."
	case errors.As(err, &activation):
		return "Make sure every --classes-dir entry is a directory."
	case errors.As(err, &generation):
		return "Re-run with --verbose for the generator's log output."
	default:
		return ""
	}
}
