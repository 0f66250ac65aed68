package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report wire names so diagnostics match what the service sends.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Decode parses and validates a service response body for the given mode.
// It is the only place where presence checks happen: a returned Result
// carries every universally required field, the fields the mode guarantees,
// and no field the mode may not expose.
func Decode(body []byte, mode Mode) (*Result, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, NewMalformedError("", "empty response body")
	}
	if trimmed[0] != '{' {
		return nil, NewMalformedError("", "response is not a JSON object")
	}

	var result Result
	if err := json.Unmarshal(trimmed, &result); err != nil {
		return nil, NewErrorWithCause(KindMalformed, "response is not valid JSON", err)
	}
	if err := applyCamelCaseAliases(trimmed, &result); err != nil {
		return nil, err
	}

	if err := validate.Struct(&result); err != nil {
		return nil, malformedFromValidation(err)
	}

	if err := result.CheckContract(mode); err != nil {
		return nil, err
	}

	return result.ForMode(mode), nil
}

// malformedFromValidation converts the first validation failure into a
// malformed response error naming the missing field.
func malformedFromValidation(err error) *Error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return NewErrorWithCause(KindMalformed, "response failed validation", err)
	}

	field := fieldPath(verrs[0].Namespace())
	return &Error{
		Kind:    KindMalformed,
		Field:   field,
		Message: "missing required field " + field,
		Cause:   err,
	}
}

// fieldPath strips the root struct name from a validator namespace
// ("Result.sentiment.polarity" -> "sentiment.polarity").
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

// camelCaseAliases are the spellings some service builds use for the
// multi-word keys. The snake_case key wins when both are present.
type camelCaseAliases struct {
	StatisticalInsights []string     `json:"statisticalInsights"`
	FinancialStatus     *string      `json:"financialStatus"`
	ContactInfo         *ContactInfo `json:"contactInfo"`
}

func applyCamelCaseAliases(body []byte, result *Result) error {
	var aliases camelCaseAliases
	if err := json.Unmarshal(body, &aliases); err != nil {
		return NewErrorWithCause(KindMalformed, "response is not valid JSON", err)
	}
	if result.StatisticalInsights == nil {
		result.StatisticalInsights = aliases.StatisticalInsights
	}
	if result.FinancialStatus == nil {
		result.FinancialStatus = aliases.FinancialStatus
	}
	if result.ContactInfo == nil {
		result.ContactInfo = aliases.ContactInfo
	}
	return nil
}
