package apperror

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError turns binding failures into INVALID_INPUT errors. Only the
// first failing field is reported.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		e := errs[0]
		humanReadableField := formatFieldName(e.Field())

		switch e.Tag() {
		case "required":
			return RequiredField(humanReadableField).WithDetails(map[string]string{"field": e.Field()})
		default:
			return InvalidField(humanReadableField).WithDetails(map[string]string{
				"field": e.Field(),
				"rule":  e.Tag(),
			})
		}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return InvalidField(formatFieldName(typeErr.Field)).WithDetails(map[string]string{"field": typeErr.Field})
	}

	return New(
		CodeInvalidInput,
		"Invalid input",
		http.StatusBadRequest,
	).WithDetails(err.Error())
}
