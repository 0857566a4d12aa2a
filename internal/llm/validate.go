package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON Schema used to check decoded model output locally.
// It is never sent upstream.
type Schema struct {
	// Name identifies this schema (kebab-case, e.g. "lsat-drill") and keys
	// the compiled-schema cache.
	Name string

	Description string

	// Definition is the JSON Schema document as a Go map.
	Definition map[string]any
}

var schemaCache sync.Map // map[string]*jsonschema.Schema

// ValidateJSON checks an already decoded JSON value (as produced by
// encoding/json into an any, with or without UseNumber) against schema.
// A nil schema accepts anything.
func ValidateJSON(schema *Schema, value any) error {
	if schema == nil {
		return nil
	}

	compiled, err := compiledSchema(schema)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}
	if err := compiled.Validate(value); err != nil {
		return fmt.Errorf("schema %q: %w", schema.Name, err)
	}
	return nil
}

// ValidateText decodes raw JSON text and checks it against schema.
func ValidateText(schema *Schema, text string) error {
	v, err := jsonschema.UnmarshalJSON(strings.NewReader(text))
	if err != nil {
		return fmt.Errorf("decode JSON: %w", err)
	}
	return ValidateJSON(schema, v)
}

func compiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants plain decoded JSON, not Go maps holding typed
	// slices, so the definition goes through encoding/json once.
	raw, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := "schema://" + schema.Name + ".json"
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, err
	}

	actual, _ := schemaCache.LoadOrStore(schema.Name, compiled)
	return actual.(*jsonschema.Schema), nil
}
