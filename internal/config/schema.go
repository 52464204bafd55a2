package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	_ "embed"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON []byte

// compiledSchema is built once at startup; the schema is part of the
// binary, so a compile failure is a programming error.
var compiledSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("config.schema.json", bytes.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("config schema resource: %v", err))
	}
	schema, err := compiler.Compile("config.schema.json")
	if err != nil {
		panic(fmt.Sprintf("config schema compile: %v", err))
	}
	return schema
}

// validateSchema checks the raw settings map against the embedded JSON
// schema, catching wrong types and out-of-range values before unmarshaling.
func validateSchema(settings map[string]any) error {
	// Round-trip through JSON so numeric types normalize the way the
	// validator expects.
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding config for validation: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decoding config for validation: %w", err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
