package pricemodel

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const modelSchemaJSON = `{
  "type": "object",
  "required": ["intercept", "coefficients"],
  "properties": {
    "intercept":    {"type": "number"},
    "coefficients": {"type": "array", "minItems": 3, "items": {"type": "number"}}
  }
}`

const columnsSchemaJSON = `{
  "type": "array",
  "minItems": 3,
  "uniqueItems": true,
  "items": {"type": "string", "minLength": 1}
}`

var (
	modelSchema   = jsonschema.MustCompileString("model.schema.json", modelSchemaJSON)
	columnsSchema = jsonschema.MustCompileString("columns.schema.json", columnsSchemaJSON)
)

type artifact struct {
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

// Load reads the exported regression model and its ordered column list.
// Both files are validated before use; the result is never reloaded.
func Load(modelPath, columnsPath string) (*Model, error) {
	var a artifact
	if err := readValidated(modelPath, modelSchema, &a); err != nil {
		return nil, err
	}
	var cols []string
	if err := readValidated(columnsPath, columnsSchema, &cols); err != nil {
		return nil, err
	}
	return New(cols, a.Intercept, a.Coefficients)
}

func readValidated(path string, sch *jsonschema.Schema, dst any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("pricemodel: read %s: %w", path, err)
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("pricemodel: parse %s: %w", path, err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("pricemodel: invalid %s: %w", path, err)
	}
	return json.Unmarshal(b, dst)
}
