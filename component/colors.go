package component

import (
	"reportforge/charts"
	"reportforge/template"
)

// BrandPalette is the series palette used for colors: "brand" when the
// template carries no color scheme of its own.
var BrandPalette = []string{
	"#2563EB", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6", "#EC4899",
}

// ResolvePalette picks the series color list for a chart: an explicit
// list wins, "brand" follows the template scheme, and everything else
// falls back deterministically so the same config always renders the
// same colors.
func ResolvePalette(opt template.ColorsOption, tpl *template.Template) []string {
	if len(opt.List) > 0 {
		return opt.List
	}
	if opt.Name == "brand" {
		if tpl != nil {
			return tpl.Settings.ColorScheme.Palette()
		}
		return BrandPalette
	}
	if tpl != nil {
		return tpl.Settings.ColorScheme.Palette()
	}
	return charts.FallbackPalette
}
