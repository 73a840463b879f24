package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	reporterrors "github.com/alexisbeaulieu97/extreports/pkg/errors"
)

// convertValidationError normalizes validator errors into validation errors
// keyed by the configuration key that failed.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		ve := ves[0]
		field := settingsKey(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		if ve.Param() != "" {
			msg = fmt.Sprintf("%s failed validation for tag '%s=%s'", field, ve.Tag(), ve.Param())
		}
		return reporterrors.NewValidationError(field, msg, err)
	}

	return reporterrors.NewValidationError("settings", err.Error(), err)
}

// settingsKey maps a namespace such as Settings.log.level to log.level.
func settingsKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}
