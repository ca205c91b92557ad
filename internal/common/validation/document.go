package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// ValidateDocument checks a decoded JSON document against a JSON Schema
// expressed as a Go map.
func ValidateDocument(schema map[string]interface{}, document interface{}) error {
	schemaLoader := gojsonschema.NewGoLoader(schema)
	documentLoader := gojsonschema.NewGoLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("document validation failed: %v", errs)
	}

	return nil
}
