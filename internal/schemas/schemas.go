// Package schemas holds the JSON Schema definitions for the files
// certprep reads and validates documents against them.
package schemas

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON Schema definition.
type Schema struct {
	// Name identifies this schema. Kebab-case, e.g. "question-bank".
	Name string

	// Definition is the JSON Schema object.
	Definition map[string]any

	compiled *jsonschema.Schema
}

func (s *Schema) url() string { return "schema://certprep/" + s.Name + ".json" }

// ErrInvalidDocument indicates a document does not conform to its schema.
type ErrInvalidDocument struct {
	Schema string
	Err    error
}

func (e *ErrInvalidDocument) Error() string {
	return fmt.Sprintf("invalid %s document: %v", e.Schema, e.Err)
}

func (e *ErrInvalidDocument) Unwrap() error { return e.Err }

// registered lists every schema compiled at init.
var registered = []*Schema{QuestionBank, BlueprintTable, Attempt}

func init() {
	if err := compile(registered); err != nil {
		panic(fmt.Sprintf("schemas: %v", err))
	}
}

// compile adds every definition to one compiler and compiles them all,
// reporting every schema that fails.
func compile(list []*Schema) error {
	c := jsonschema.NewCompiler()
	for _, s := range list {
		doc, err := decode(s.Definition)
		if err != nil {
			return fmt.Errorf("%s: %w", s.Name, err)
		}
		if err := c.AddResource(s.url(), doc); err != nil {
			return fmt.Errorf("%s: %w", s.Name, err)
		}
	}

	var errs []error
	for _, s := range list {
		sch, err := c.Compile(s.url())
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name, err))
			continue
		}
		s.compiled = sch
	}
	return errors.Join(errs...)
}

// decode turns a Go value into the JSON value model the compiler and
// validator expect (numbers as json.Number).
func decode(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(raw))
}

// Validate checks raw JSON against schema. Returns *ErrInvalidDocument
// on failure.
func Validate(schema *Schema, raw []byte) error {
	if schema.compiled == nil {
		return &ErrInvalidDocument{Schema: schema.Name, Err: errors.New("schema is not registered")}
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &ErrInvalidDocument{Schema: schema.Name, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := schema.compiled.Validate(doc); err != nil {
		return &ErrInvalidDocument{Schema: schema.Name, Err: err}
	}
	return nil
}
