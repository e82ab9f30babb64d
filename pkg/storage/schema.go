package storage

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// manifestSchemaJSON only checks structure. Quality rules (non-empty title,
// priority range, SMART) belong to requirement validation, not to loading.
const manifestSchemaJSON = `{
  "type": "object",
  "required": ["project", "requirements"],
  "properties": {
    "project": { "type": "string" },
    "requirements": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["title", "description", "type", "priority"],
        "additionalProperties": false,
        "properties": {
          "id": { "type": "string" },
          "title": { "type": "string" },
          "description": { "type": "string" },
          "type": { "type": "string" },
          "priority": { "type": "integer" },
          "verify": { "type": "boolean" },
          "notes": { "type": "string" },
          "smart": {
            "type": "object",
            "additionalProperties": false,
            "properties": {
              "specific": { "type": "boolean" },
              "measurable": { "type": "boolean" },
              "achievable": { "type": "boolean" },
              "relevant": { "type": "boolean" },
              "time_bound": { "type": "boolean" }
            }
          }
        }
      }
    }
  }
}`

var manifestSchemaLoader = gojsonschema.NewStringLoader(manifestSchemaJSON)

// SchemaError lists every schema violation found in a manifest.
type SchemaError struct {
	Path       string
	Violations []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("manifest %s does not match schema: %s", e.Path, strings.Join(e.Violations, "; "))
}

func validateManifestSchema(path string, doc interface{}) error {
	result, err := gojsonschema.Validate(manifestSchemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("failed to validate manifest schema: %w", err)
	}
	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}
	return &SchemaError{Path: path, Violations: violations}
}
