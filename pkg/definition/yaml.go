package definition

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type yamlDocument struct {
	Fieldsets []yamlFieldset `yaml:"fieldsets"`
}

type yamlFieldset struct {
	Name        string  `yaml:"name"`
	Label       string  `yaml:"label"`
	Description string  `yaml:"description"`
	Fields      []Field `yaml:"fields"`
}

// UnmarshalYAML decodes a field mapping. The name, type and options keys are
// lifted into their struct fields, every other key becomes an attribute.
func (f *Field) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: field must be a mapping (line %d)", ErrInvalidDocument, value.Line)
	}

	var raw map[string]any
	if err := value.Decode(&raw); err != nil {
		return err
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		if value.Content[i].Value != "options" {
			continue
		}
		if err := value.Content[i+1].Decode(&f.Options); err != nil {
			return fmt.Errorf("%w: options of field at line %d: %w", ErrInvalidDocument, value.Line, err)
		}
	}
	delete(raw, "options")

	if v, ok := raw["name"]; ok {
		f.Name = attrString(v)
		delete(raw, "name")
	}
	if v, ok := raw["type"]; ok {
		f.Type = attrString(v)
		delete(raw, "type")
	}
	if len(raw) > 0 {
		f.Attrs = raw
	}
	return nil
}

// LoadYAML builds a generator from a YAML document of fieldsets:
//
//	fieldsets:
//	  - name: main
//	    label: FIELDSET_MAIN
//	    fields:
//	      - name: email
//	        type: email
//	        required: true
//	        validate: email
func LoadYAML(r io.Reader) (*Generator, error) {
	var doc yamlDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	if len(doc.Fieldsets) == 0 {
		return nil, ErrEmptyDocument
	}

	g := NewGenerator()
	for _, fs := range doc.Fieldsets {
		name := fs.Name
		if name == "" {
			name = DefaultFieldset
		}
		if err := g.AddFieldset(name, fs.Fields...); err != nil {
			return nil, fmt.Errorf("fieldset %q: %w", name, err)
		}
		if fs.Label != "" {
			g.SetFieldsetLabel(name, fs.Label)
		}
		if fs.Description != "" {
			g.SetFieldsetDescription(name, fs.Description)
		}
	}
	return g, nil
}
