package template

import (
	"fmt"
	"math"
)

var validTypes = map[string]bool{
	TypeText:    true,
	TypeTable:   true,
	TypeImage:   true,
	TypeChart:   true,
	TypeSummary: true,
}

var validChartKinds = map[string]bool{
	ChartColumn:        true,
	ChartBar:           true,
	ChartLine:          true,
	ChartPie:           true,
	ChartStackedColumn: true,
	ChartStackedBar:    true,
}

var validInsightTypes = map[string]bool{
	"key_metrics":    true,
	"trends":         true,
	"highlights":     true,
	"comparisons":    true,
	"top_performers": true,
}

// ValidChartKind reports whether kind is a supported chart kind.
func ValidChartKind(kind string) bool {
	return validChartKinds[kind]
}

// ValidInsightType reports whether kind is a supported insight kind.
func ValidInsightType(kind string) bool {
	return validInsightTypes[kind]
}

// Validate checks the whole template and returns every problem found.
// An empty result means the template is usable.
func Validate(t *Template) []error {
	var errs []error

	if t.Metadata.Name == "" {
		errs = append(errs, fmt.Errorf("template name is required"))
	}
	if len(t.Slides) == 0 {
		errs = append(errs, fmt.Errorf("template has no slides"))
	}
	if ar := t.Settings.PageAspectRatio; ar != "" && ar != "16:9" && ar != "4:3" {
		errs = append(errs, fmt.Errorf("unsupported page aspect ratio %q", ar))
	}

	for si, slide := range t.Slides {
		for ci, c := range slide.Components {
			for _, err := range ValidateComponent(c) {
				errs = append(errs, fmt.Errorf("slide %d, component %d: %w", si, ci, err))
			}
		}
	}
	return errs
}

// ValidateComponent checks a single component config. The same checks run
// at factory construction time, so a template that validates cleanly also
// builds cleanly.
func ValidateComponent(c ComponentConfig) []error {
	var errs []error

	if !validTypes[c.Type] {
		errs = append(errs, fmt.Errorf("unknown component type %q", c.Type))
		return errs
	}
	if bad(c.Position.X) || bad(c.Position.Y) || c.Position.X < 0 || c.Position.Y < 0 {
		errs = append(errs, fmt.Errorf("position must be non-negative"))
	}
	if bad(c.Size.Width) || bad(c.Size.Height) || c.Size.Width <= 0 || c.Size.Height <= 0 {
		errs = append(errs, fmt.Errorf("size must be positive"))
	}

	switch c.Type {
	case TypeText:
		if c.Content == "" {
			errs = append(errs, fmt.Errorf("text component requires content"))
		}
	case TypeTable:
		if len(c.Data.Columns) == 0 && len(c.Data.ColumnMapping) == 0 {
			errs = append(errs, fmt.Errorf("table component requires columns or column_mapping"))
		}
	case TypeChart:
		if c.ChartType == "" {
			errs = append(errs, fmt.Errorf("chart component requires chart_type"))
		} else if !validChartKinds[c.ChartType] {
			errs = append(errs, fmt.Errorf("unknown chart type %q", c.ChartType))
		}
		if c.Data.YColumn == "" {
			errs = append(errs, fmt.Errorf("chart component requires y_column"))
		}
		if c.ChartType != ChartPie && c.ChartType != "" && c.Data.XColumn == "" {
			errs = append(errs, fmt.Errorf("chart type %q requires x_column", c.ChartType))
		}
	case TypeImage:
		if c.Data.Path == "" && c.Data.Kind != "logo" {
			errs = append(errs, fmt.Errorf("image component requires a path or type \"logo\""))
		}
	case TypeSummary:
		for _, it := range c.Data.InsightTypes {
			if !validInsightTypes[it] {
				errs = append(errs, fmt.Errorf("unknown insight type %q", it))
			}
		}
	}
	return errs
}

func bad(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
