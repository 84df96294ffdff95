package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// JSONSchema returns the JSON Schema describing Config files, for editor
// completion and validation.
func JSONSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		FieldNameTag:   "json",
		DoNotReference: true,
	}
	s := r.Reflect(&Config{})
	s.Title = "thinkstream configuration"
	return s
}

// JSONSchemaBytes returns JSONSchema as indented JSON.
func JSONSchemaBytes() ([]byte, error) {
	data, err := json.MarshalIndent(JSONSchema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal config schema: %w", err)
	}
	return data, nil
}
