package component

import (
	"fmt"

	"reportforge/template"
)

// Factory builds components from template configs, validating each config
// before construction so a returned component is always renderable.
type Factory struct {
	tpl *template.Template
}

// NewFactory creates a Factory. The template provides defaults (fonts,
// colors, logo paths) and may be nil for standalone use.
func NewFactory(tpl *template.Template) *Factory {
	return &Factory{tpl: tpl}
}

// Create validates the config and constructs the matching component.
// Invalid configs return a ConfigError carrying every problem found.
func (f *Factory) Create(cfg template.ComponentConfig) (Component, error) {
	if errs := template.ValidateComponent(cfg); len(errs) > 0 {
		return nil, &ConfigError{Kind: cfg.Type, Problems: errs}
	}

	switch cfg.Type {
	case template.TypeText:
		return &textComponent{cfg: cfg}, nil
	case template.TypeTable:
		return &tableComponent{cfg: cfg}, nil
	case template.TypeImage:
		return &imageComponent{cfg: cfg}, nil
	case template.TypeChart:
		return &chartComponent{cfg: cfg}, nil
	case template.TypeSummary:
		return &summaryComponent{cfg: cfg}, nil
	default:
		// Unreachable: validation rejects unknown types.
		return nil, fmt.Errorf("unknown component type %q", cfg.Type)
	}
}

// CreateAll builds every config it can, collecting one error per invalid
// config instead of stopping at the first.
func (f *Factory) CreateAll(cfgs []template.ComponentConfig) ([]Component, []error) {
	var out []Component
	var errs []error
	for i, cfg := range cfgs {
		c, err := f.Create(cfg)
		if err != nil {
			errs = append(errs, fmt.Errorf("component %d: %w", i, err))
			continue
		}
		out = append(out, c)
	}
	return out, errs
}
