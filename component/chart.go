package component

import (
	"fmt"

	ppt "github.com/VantageDataChat/GoPPT"

	"reportforge/charts"
	"reportforge/datamap"
	"reportforge/template"
)

// chartComponent rasterizes a chart from the dataset slice and embeds
// the PNG. Sizing always goes through charts.Resolve, so oversized or
// nonsensical dimension requests degrade instead of exploding the
// raster buffer.
type chartComponent struct {
	cfg template.ComponentConfig
}

func (c *chartComponent) Kind() string { return template.TypeChart }

func (c *chartComponent) DataSource() template.DataSource { return c.cfg.Data }

func (c *chartComponent) Render(slide *ppt.Slide, slice *datamap.Slice, env *Env) error {
	src := c.cfg.Data
	style := c.cfg.Style

	// A missing y column is a config/data mismatch, not an empty dataset.
	// It fails the component so the run reports a warning for it.
	if slice.ColumnIndex(src.YColumn) < 0 {
		return fmt.Errorf("column %q not found in dataset", src.YColumn)
	}

	categories, series := charts.BuildSeries(slice, src.XColumn, src.YColumn, src.SeriesColumn)
	if len(categories) == 0 || len(series) == 0 {
		renderPlaceholder(slide, c.cfg.Position, c.cfg.Size, "No chart data available")
		return nil
	}

	legend := style.LegendPosition
	if legend == "" {
		if src.SeriesColumn != "" {
			legend = "right"
		} else {
			legend = "none"
		}
	}

	ctx := charts.Resolve(c.cfg.Size.Width, c.cfg.Size.Height, style.Resolution)
	png, err := charts.Render(ctx, charts.Input{
		Kind:       c.cfg.ChartType,
		Title:      style.Title,
		XLabel:     style.XLabel,
		YLabel:     style.YLabel,
		Categories: categories,
		Series:     series,
		Palette:    ResolvePalette(style.Colors, env.Template),
		Legend:     legend,
		ShowValues: style.ShowValues,
		Grid:       template.BoolOr(style.Grid, true),
		FontSize:   style.FontSize,
	})
	if err != nil {
		return fmt.Errorf("failed to render %s chart: %w", c.cfg.ChartType, err)
	}

	shape := slide.CreateDrawingShape()
	shape.SetImageData(png, "image/png")
	shape.SetOffsetX(EMU(c.cfg.Position.X)).SetOffsetY(EMU(c.cfg.Position.Y))
	shape.SetWidth(EMU(c.cfg.Size.Width)).SetHeight(EMU(c.cfg.Size.Height))
	return nil
}
