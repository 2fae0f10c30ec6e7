// Package validate is the gate every externally supplied document passes
// before it can replace the current state.
package validate

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/abhisek/masterly/internal/apperr"
	"github.com/abhisek/masterly/internal/catalog"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed document.schema.json
var documentSchema []byte

const schemaURL = "schema://masterly/document.json"

var compiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
	def, err := jsonschema.UnmarshalJSON(bytes.NewReader(documentSchema))
	if err != nil {
		return nil, fmt.Errorf("parse document schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(schemaURL)
})

// Validate reports whether raw is a structurally valid document.
func Validate(raw []byte) bool {
	_, err := Parse(raw)
	return err == nil
}

// Parse checks raw against the document schema and decodes it. A single
// violation anywhere rejects the whole document with a validation error.
func Parse(raw []byte) (*catalog.Document, error) {
	sch, err := compiled()
	if err != nil {
		return nil, fmt.Errorf("compile document schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, apperr.Validation("invalid JSON", err)
	}
	if err := sch.Validate(inst); err != nil {
		return nil, apperr.Validation("invalid document structure", err)
	}

	var doc catalog.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, apperr.Validation("decode document", err)
	}
	return &doc, nil
}
