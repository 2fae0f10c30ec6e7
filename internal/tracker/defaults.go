package tracker

import (
	_ "embed"
	"fmt"

	"github.com/abhisek/masterly/internal/catalog"
	"github.com/abhisek/masterly/internal/validate"
)

//go:embed default_data.json
var defaultData []byte

// DefaultDocument returns the starter question bank loaded when nothing has
// been saved yet.
func DefaultDocument() (*catalog.Document, error) {
	doc, err := validate.Parse(defaultData)
	if err != nil {
		return nil, fmt.Errorf("default data: %w", err)
	}
	return doc, nil
}
