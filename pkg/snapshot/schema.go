package snapshot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrSchemaViolation is returned when a snapshot document does not conform to
// the snapshot schema. The wrapped message lists every violated field.
var ErrSchemaViolation = errors.New("snapshot: document violates schema")

// documentSchema is the JSON Schema for snapshot documents: a recursive
// object with a mandatory role name and an optional ordered children array.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "accessibility tree snapshot",
  "$ref": "#/definitions/node",
  "definitions": {
    "node": {
      "type": "object",
      "required": ["role"],
      "additionalProperties": false,
      "properties": {
        "role": {
          "type": "string",
          "minLength": 1
        },
        "children": {
          "type": "array",
          "items": { "$ref": "#/definitions/node" }
        }
      }
    }
  }
}`

// Validate checks a raw snapshot document against the snapshot schema without
// decoding it into Node values. Role-name membership in the closed role
// enumeration is not checked here; that happens when the tree is built.
func Validate(document []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(documentSchema)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("snapshot: schema validation: %w", err)
	}

	if result.Valid() {
		return nil
	}

	var b strings.Builder

	for i, verr := range result.Errors() {
		if i > 0 {
			b.WriteString("; ")
		}

		fmt.Fprintf(&b, "%s: %s", verr.Field(), verr.Description())
	}

	return fmt.Errorf("%w: %s", ErrSchemaViolation, b.String())
}
