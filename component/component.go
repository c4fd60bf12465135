// Package component implements the slide components a template can place:
// text, table, image, chart and summary. Components are built by the
// Factory from validated configs and draw themselves onto a slide.
package component

import (
	ppt "github.com/VantageDataChat/GoPPT"

	"reportforge/datamap"
	"reportforge/template"
)

const emuPerInch = 914400

// Page is the slide geometry in inches.
type Page struct {
	WidthIn  float64
	HeightIn float64
}

// PageFor maps an aspect ratio setting to slide geometry. The default is
// the 16:9 widescreen layout.
func PageFor(aspectRatio string) Page {
	if aspectRatio == "4:3" {
		return Page{WidthIn: 10.0, HeightIn: 7.5}
	}
	return Page{WidthIn: 10.0, HeightIn: 5.625}
}

// Env is the shared rendering environment a component draws within.
type Env struct {
	Template *template.Template
	Page     Page
	Vars     datamap.Variables

	// Image search path, tried in order after absolute and cwd.
	AssetDirs []string
}

// Component is a constructed, validated slide component.
type Component interface {
	Kind() string

	// DataSource tells the caller which dataset slice to hand Render.
	DataSource() template.DataSource

	Render(slide *ppt.Slide, slice *datamap.Slice, env *Env) error
}

// EMU converts inches to English Metric Units.
func EMU(inches float64) int64 {
	return int64(inches * emuPerInch)
}

// place positions a rich text shape from a component's box.
func place(shape *ppt.RichTextShape, pos template.Position, size template.Size) {
	shape.SetOffsetX(EMU(pos.X)).SetOffsetY(EMU(pos.Y))
	shape.SetWidth(EMU(size.Width)).SetHeight(EMU(size.Height))
}

func solidFill(argbColor string) *ppt.Fill {
	return ppt.NewFill().SetSolid(ppt.NewColor(argbColor))
}

func alignCenter(p *ppt.Paragraph) {
	p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
}

func alignRight(p *ppt.Paragraph) {
	p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalRight))
}

// argb converts "#RRGGBB" to the AARRGGBB form the document model wants,
// falling back to opaque dark gray on malformed input.
func argb(hex string) string {
	h := hex
	if len(h) > 0 && h[0] == '#' {
		h = h[1:]
	}
	if len(h) == 8 {
		return h
	}
	if len(h) != 6 {
		return "FF1F2937"
	}
	return "FF" + h
}

// applyAlignment maps a style alignment name onto a paragraph. Left is
// the document default and needs no call.
func applyAlignment(p *ppt.Paragraph, alignment string) {
	switch alignment {
	case "center":
		alignCenter(p)
	case "right":
		alignRight(p)
	}
}

// fontSizeOr resolves a component font size against template defaults.
func fontSizeOr(style template.Style, env *Env, def float64) int {
	if style.FontSize > 0 {
		return int(style.FontSize)
	}
	if env.Template != nil && env.Template.Settings.DefaultFontSize > 0 {
		return int(env.Template.Settings.DefaultFontSize)
	}
	return int(def)
}

// textColorOr resolves a text color against the template color scheme.
func textColorOr(color string, env *Env) string {
	if color != "" {
		return argb(color)
	}
	if env.Template != nil {
		return argb(env.Template.Settings.ColorScheme.WithDefaults().Text)
	}
	return argb("#1F2937")
}
