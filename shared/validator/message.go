package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required":      "{field} is required",
	"required_with": "{field} is required when {param} is set",
	"gt":            "{field} must be greater than {param}",
	"gte":           "{field} must be greater than or equal to {param}",
	"lte":           "{field} must be less than or equal to {param}",
	"oneof":         "{field} must be one of {param}",
	"max":           "{field} must be at most {param} characters",
	"min":           "{field} must be at least {param} characters",
	"email":         "{field} must be a valid email address",
	"uuid":          "{field} must be a valid UUID",
	"latitude":      "{field} must be a latitude between -90 and 90",
	"longitude":     "{field} must be a longitude between -180 and 180",
	"nefield":       "{field} must differ from {param}",
	"plate":         "{field} must be a vehicle plate of letters, digits, spaces or dashes",
	"mimetypes":     "{field} must be one of {param}",
	"maxfilesize":   "{field} must not exceed {param} MB",
}

// message renders the first failed rule with a known template.
func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	for _, valErr := range valErrors {
		tmpl, ok := messages[valErr.Tag()]
		if !ok {
			continue
		}

		return strings.NewReplacer("{field}", valErr.Field(), "{param}", valErr.Param()).Replace(tmpl)
	}

	return valErrors.Error()
}
