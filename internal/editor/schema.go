package editor

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"webbuilder/internal/domain"
)

// ErrInvalidElement wraps every schema violation reported by DecodeElement
// and DecodePatch.
var ErrInvalidElement = errors.New("invalid element")

//go:embed schema/*.json
var schemaFS embed.FS

var (
	schemasOnce   sync.Once
	elementSchema *gojsonschema.Schema
	patchSchema   *gojsonschema.Schema
	schemasErr    error
)

func loadSchemas() error {
	schemasOnce.Do(func() {
		elementSchema, schemasErr = compileSchema("schema/element.schema.json")
		if schemasErr != nil {
			return
		}
		patchSchema, schemasErr = compileSchema("schema/patch.schema.json")
	})
	return schemasErr
}

func compileSchema(name string) (*gojsonschema.Schema, error) {
	raw, err := schemaFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}
	return s, nil
}

func validate(s *gojsonschema.Schema, data []byte) error {
	res, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidElement, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidElement, strings.Join(msgs, "; "))
}

// DecodeElement validates data against the element schema and decodes it.
func DecodeElement(data []byte) (*domain.Element, error) {
	if err := loadSchemas(); err != nil {
		return nil, err
	}
	if err := validate(elementSchema, data); err != nil {
		return nil, err
	}
	var el domain.Element
	if err := json.Unmarshal(data, &el); err != nil {
		return nil, fmt.Errorf("decode element: %w", err)
	}
	return &el, nil
}

// DecodePatch validates data against the patch schema and decodes it.
func DecodePatch(data []byte) (domain.ElementPatch, error) {
	var p domain.ElementPatch
	if err := loadSchemas(); err != nil {
		return p, err
	}
	if err := validate(patchSchema, data); err != nil {
		return p, err
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("decode patch: %w", err)
	}
	return p, nil
}
