// internal/api/schema.go
package api

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// preferencesSchema validates the stateless recommend request body. All
// fields are optional: the resolver is total and treats missing fields as
// "no filter", but present fields must have the right shape.
const preferencesSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "genres": {
      "type": "array",
      "items": { "type": "string" }
    },
    "decade": { "type": "string" },
    "language": { "type": "string" },
    "rating": { "type": "string" },
    "popularity": { "type": "string" },
    "showTrailer": { "type": "string", "enum": ["", "yes", "no"] }
  },
  "additionalProperties": false
}`

var preferencesSchemaLoader = gojsonschema.NewStringLoader(preferencesSchema)

// validatePreferences checks a raw request body against the preferences
// schema. Returns a describing error when the document does not conform.
func validatePreferences(body []byte) error {
	result, err := gojsonschema.Validate(preferencesSchemaLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return fmt.Errorf("invalid preferences: %s", strings.Join(problems, "; "))
}
