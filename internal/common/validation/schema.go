package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// FieldSchema describes the accepted shape of a flat form or request body.
type FieldSchema struct {
	Properties map[string]Property
	Required   []string
	// AllowExtra admits fields that have no Property entry.
	AllowExtra bool
}

type Property struct {
	Type      string // string | number | boolean | array
	Enum      []string
	Pattern   *regexp.Regexp
	MinLength int
	MaxLength int
	Minimum   *float64
	Maximum   *float64
	Items     *Property
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ValidateInput checks input against schema. Values arriving as strings
// (multipart form fields) are accepted for number and boolean properties
// when they parse.
func ValidateInput(input map[string]interface{}, schema FieldSchema) *ValidationResult {
	var errs []ValidationError

	for _, field := range schema.Required {
		v, ok := input[field]
		if !ok || isBlank(v) {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "required field missing",
				Code:    "REQUIRED_FIELD_MISSING",
			})
		}
	}

	keys := make([]string, 0, len(input))
	for k := range input {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, field := range keys {
		prop, ok := schema.Properties[field]
		if !ok {
			if !schema.AllowExtra {
				errs = append(errs, ValidationError{
					Field:   field,
					Message: "field not allowed",
					Code:    "EXTRA_FIELD",
				})
			}
			continue
		}
		errs = append(errs, validateField(field, input[field], prop)...)
	}

	return &ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func validateField(field string, value interface{}, prop Property) []ValidationError {
	switch prop.Type {
	case "number":
		n, err := cast.ToFloat64E(value)
		if err != nil {
			return []ValidationError{{Field: field, Message: fmt.Sprintf("expected number, got %v", value), Code: "INVALID_TYPE"}}
		}
		var errs []ValidationError
		if prop.Minimum != nil && n < *prop.Minimum {
			errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("value must be >= %v", *prop.Minimum), Code: "MINIMUM_VIOLATION"})
		}
		if prop.Maximum != nil && n > *prop.Maximum {
			errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("value must be <= %v", *prop.Maximum), Code: "MAXIMUM_VIOLATION"})
		}
		return errs

	case "boolean":
		if _, err := cast.ToBoolE(value); err != nil {
			return []ValidationError{{Field: field, Message: fmt.Sprintf("expected boolean, got %v", value), Code: "INVALID_TYPE"}}
		}
		return nil

	case "array":
		items, ok := toSlice(value)
		if !ok {
			return []ValidationError{{Field: field, Message: fmt.Sprintf("expected array, got %T", value), Code: "INVALID_TYPE"}}
		}
		var errs []ValidationError
		if prop.Items != nil {
			for i, item := range items {
				errs = append(errs, validateField(fmt.Sprintf("%s[%d]", field, i), item, *prop.Items)...)
			}
		}
		return errs
	}

	s, ok := value.(string)
	if !ok {
		return []ValidationError{{Field: field, Message: fmt.Sprintf("expected string, got %T", value), Code: "INVALID_TYPE"}}
	}
	var errs []ValidationError
	if prop.MinLength > 0 && len(s) < prop.MinLength {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("value must be at least %d characters", prop.MinLength), Code: "MIN_LENGTH_VIOLATION"})
	}
	if prop.MaxLength > 0 && len(s) > prop.MaxLength {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("value must be at most %d characters", prop.MaxLength), Code: "MAX_LENGTH_VIOLATION"})
	}
	if prop.Pattern != nil && !prop.Pattern.MatchString(s) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("value must match pattern %s", prop.Pattern.String()), Code: "PATTERN_MISMATCH"})
	}
	if len(prop.Enum) > 0 && !containsFold(prop.Enum, s) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("value must be one of %v", prop.Enum), Code: "INVALID_ENUM_VALUE"})
	}
	return errs
}

func toSlice(value interface{}) ([]interface{}, bool) {
	switch v := value.(type) {
	case []interface{}:
		return v, true
	case []string:
		out := make([]interface{}, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}

func isBlank(v interface{}) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func containsFold(values []string, s string) bool {
	for _, v := range values {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field || strings.HasPrefix(err.Field, field+"[") {
			return true
		}
	}
	return false
}

// Summary joins all messages into one line.
func (vr *ValidationResult) Summary() string {
	return strings.Join(vr.GetErrorMessages(), "; ")
}

var (
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,}$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// ValidatePhone validates basic phone number format
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ValidateEmail validates email format
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}
