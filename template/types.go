// Package template defines the presentation template document model and
// the Manager that loads, validates, edits and persists templates.
package template

import (
	"encoding/json"
	"fmt"
)

// Component type names accepted in a template.
const (
	TypeText    = "text"
	TypeTable   = "table"
	TypeImage   = "image"
	TypeChart   = "chart"
	TypeSummary = "summary"
)

// Chart kinds accepted by chart components.
const (
	ChartColumn        = "column"
	ChartBar           = "bar"
	ChartLine          = "line"
	ChartPie           = "pie"
	ChartStackedColumn = "stacked_column"
	ChartStackedBar    = "stacked_bar"
)

// Template is the canonical (wrapped) template document.
type Template struct {
	Metadata Metadata `json:"metadata"`
	Settings Settings `json:"settings"`
	Slides   []Slide  `json:"slides"`
}

// Metadata describes the template itself.
type Metadata struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
	Industry    string `json:"industry,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	ModifiedAt  string `json:"modified_at,omitempty"`
}

// Settings holds presentation-wide options.
type Settings struct {
	PageAspectRatio  string      `json:"page_aspect_ratio,omitempty"` // "16:9" (default) or "4:3"
	DefaultFont      string      `json:"default_font,omitempty"`
	DefaultFontSize  float64     `json:"default_font_size,omitempty"`
	ColorScheme      ColorScheme `json:"color_scheme,omitempty"`
	LogoPath         string      `json:"logo_path,omitempty"`
	EmbeddedLogoPath string      `json:"embedded_logo_path,omitempty"`
	TitleSlide       TitleSlide  `json:"title_slide,omitempty"`
}

// ColorScheme carries the template brand colors as "#RRGGBB" strings.
type ColorScheme struct {
	Primary    string `json:"primary,omitempty"`
	Secondary  string `json:"secondary,omitempty"`
	Accent     string `json:"accent,omitempty"`
	Negative   string `json:"negative,omitempty"`
	Neutral    string `json:"neutral,omitempty"`
	Text       string `json:"text,omitempty"`
	Background string `json:"background,omitempty"`
}

// WithDefaults fills unset scheme entries with the built-in defaults.
func (cs ColorScheme) WithDefaults() ColorScheme {
	def := ColorScheme{
		Primary:    "#2563EB",
		Secondary:  "#10B981",
		Accent:     "#F59E0B",
		Negative:   "#EF4444",
		Neutral:    "#8B5CF6",
		Text:       "#1F2937",
		Background: "#FFFFFF",
	}
	if cs.Primary == "" {
		cs.Primary = def.Primary
	}
	if cs.Secondary == "" {
		cs.Secondary = def.Secondary
	}
	if cs.Accent == "" {
		cs.Accent = def.Accent
	}
	if cs.Negative == "" {
		cs.Negative = def.Negative
	}
	if cs.Neutral == "" {
		cs.Neutral = def.Neutral
	}
	if cs.Text == "" {
		cs.Text = def.Text
	}
	if cs.Background == "" {
		cs.Background = def.Background
	}
	return cs
}

// Palette returns the scheme as an ordered color list for series coloring.
func (cs ColorScheme) Palette() []string {
	cs = cs.WithDefaults()
	return []string{cs.Primary, cs.Secondary, cs.Accent, cs.Negative, cs.Neutral, "#EC4899"}
}

// TitleSlide feeds the automatic title slide and the variable set.
type TitleSlide struct {
	Title       string `json:"title,omitempty"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description,omitempty"`
}

// Slide is one slide definition: a layout name and an ordered component list.
type Slide struct {
	Name       string            `json:"name,omitempty"`
	Layout     string            `json:"layout,omitempty"`
	Components []ComponentConfig `json:"components"`
}

// Position is the top-left placement of a component, in inches.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is the component box size, in inches.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ComponentConfig is the tagged variant describing one slide component.
// Type selects the variant; the remaining fields only apply to the kinds
// that use them and are ignored elsewhere.
type ComponentConfig struct {
	Type      string            `json:"type"`
	Position  Position          `json:"position"`
	Size      Size              `json:"size"`
	Content   string            `json:"content,omitempty"`
	Variables map[string]string `json:"variables,omitempty"`
	ChartType string            `json:"chart_type,omitempty"`
	Data      DataSource        `json:"data_source,omitempty"`
	Style     Style             `json:"style,omitempty"`
}

// DataSource tells the mapper which part of the dataset a component needs.
type DataSource struct {
	Columns       []string          `json:"columns,omitempty"`
	ColumnMapping map[string]string `json:"column_mapping,omitempty"`
	SortBy        string            `json:"sort_by,omitempty"`
	Ascending     bool              `json:"ascending,omitempty"`
	TopN          int               `json:"top_n,omitempty"`
	XColumn       string            `json:"x_column,omitempty"`
	YColumn       string            `json:"y_column,omitempty"`
	SeriesColumn  string            `json:"series_column,omitempty"`

	// Image components
	Path string `json:"path,omitempty"`
	Kind string `json:"type,omitempty"` // "logo" resolves through template settings

	// Summary components
	InsightTypes  []string `json:"insight_types,omitempty"`
	MetricColumns []string `json:"metric_columns,omitempty"`
	CompareColumn string   `json:"compare_column,omitempty"`
	TimeColumn    string   `json:"time_column,omitempty"`
	MaxItems      int      `json:"max_items,omitempty"`
}

// Style collects per-component presentation options.
type Style struct {
	FontName  string  `json:"font_name,omitempty"`
	FontSize  float64 `json:"font_size,omitempty"`
	Bold      bool    `json:"bold,omitempty"`
	Italic    bool    `json:"italic,omitempty"`
	Color     string  `json:"color,omitempty"`
	Alignment string  `json:"alignment,omitempty"` // left, center, right

	// Tables
	HeaderRow       *bool  `json:"header_row,omitempty"`
	ZebraStriping   *bool  `json:"zebra_striping,omitempty"`
	HeaderColor     string `json:"header_color,omitempty"`
	HeaderTextColor string `json:"header_text_color,omitempty"`
	RowColorA       string `json:"row_color_1,omitempty"`
	RowColorB       string `json:"row_color_2,omitempty"`
	TextColor       string `json:"text_color,omitempty"`
	NumberFormat    string `json:"number_format,omitempty"` // decimal, percentage, currency

	// Charts
	Colors         ColorsOption `json:"colors,omitempty"`
	LegendPosition string       `json:"legend_position,omitempty"` // none, top, bottom, left, right
	ShowValues     bool         `json:"show_values,omitempty"`
	Grid           *bool        `json:"grid,omitempty"`
	Title          string       `json:"title,omitempty"`
	XLabel         string       `json:"x_label,omitempty"`
	YLabel         string       `json:"y_label,omitempty"`
	Resolution     float64      `json:"resolution,omitempty"` // dpi override

	// Images
	MaintainAspect *bool `json:"maintain_aspect,omitempty"`

	// Summaries
	Layout         string `json:"layout,omitempty"` // bullets, numbered, callout_boxes
	ShowIcons      *bool  `json:"show_icons,omitempty"`
	HighlightColor string `json:"highlight_color,omitempty"`
}

// ColorsOption accepts either a palette name ("brand") or an explicit
// hex color list in JSON.
type ColorsOption struct {
	Name string
	List []string
}

// UnmarshalJSON decodes a string or an array of strings.
func (c *ColorsOption) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Name = s
		c.List = nil
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		c.Name = ""
		c.List = list
		return nil
	}
	return fmt.Errorf("colors must be a palette name or a list of hex colors")
}

// MarshalJSON writes back whichever form is set.
func (c ColorsOption) MarshalJSON() ([]byte, error) {
	if c.Name != "" {
		return json.Marshal(c.Name)
	}
	if c.List != nil {
		return json.Marshal(c.List)
	}
	return []byte("null"), nil
}

// IsZero reports whether no colors were configured.
func (c ColorsOption) IsZero() bool {
	return c.Name == "" && len(c.List) == 0
}

// BoolOr returns *b, or def when b is nil.
func BoolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
