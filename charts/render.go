package charts

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Chart kind names, matching the template chart_type values.
const (
	KindColumn        = "column"
	KindBar           = "bar"
	KindLine          = "line"
	KindPie           = "pie"
	KindStackedColumn = "stacked_column"
	KindStackedBar    = "stacked_bar"
)

// FallbackPalette is used when neither the component style nor the
// template provides colors. It is fixed so renders are deterministic.
var FallbackPalette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b",
}

// Input is one chart to draw. Categories and Series come from
// BuildSeries; Palette colors cycle when there are more series than
// colors.
type Input struct {
	Kind       string
	Title      string
	XLabel     string
	YLabel     string
	Categories []string
	Series     []Series
	Palette    []string
	Legend     string // none, top, bottom, left, right
	ShowValues bool
	Grid       bool
	FontSize   float64
}

// Render rasterizes the input to a PNG sized by ctx. Every backend
// surface gets its dimensions and DPI from ctx explicitly.
func Render(ctx Context, in Input) ([]byte, error) {
	if len(in.Categories) == 0 || len(in.Series) == 0 {
		return nil, fmt.Errorf("chart has no plottable data")
	}
	if len(in.Palette) == 0 {
		in.Palette = FallbackPalette
	}

	switch in.Kind {
	case KindLine:
		return renderLine(ctx, in)
	case KindPie:
		return renderPie(ctx, in)
	case KindColumn:
		if len(in.Series) == 1 {
			return renderColumn(ctx, in)
		}
		return renderStacked(ctx, in, false)
	case KindStackedColumn:
		return renderStacked(ctx, in, false)
	case KindBar, KindStackedBar:
		return renderStacked(ctx, in, true)
	default:
		return nil, fmt.Errorf("unknown chart kind %q", in.Kind)
	}
}

func renderLine(ctx Context, in Input) ([]byte, error) {
	graph := chart.Chart{
		Title:      in.Title,
		TitleStyle: chart.Style{FontSize: titleSize(in)},
		Width:      ctx.PixelWidth,
		Height:     ctx.PixelHeight,
		DPI:        ctx.DPI,
		XAxis: chart.XAxis{
			Name:  in.XLabel,
			Ticks: categoryTicks(in.Categories),
		},
		YAxis: chart.YAxis{
			Name: in.YLabel,
		},
	}
	if in.Grid {
		grid := chart.Style{StrokeColor: drawing.Color{R: 229, G: 231, B: 235, A: 255}, StrokeWidth: 1.0}
		graph.XAxis.GridMajorStyle = grid
		graph.YAxis.GridMajorStyle = grid
	}

	xs := make([]float64, len(in.Categories))
	for i := range xs {
		xs[i] = float64(i)
	}
	for si, s := range in.Series {
		cs := chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: s.Values,
			Style: chart.Style{
				StrokeColor: paletteColor(in.Palette, si),
				StrokeWidth: 2.0,
			},
		}
		graph.Series = append(graph.Series, cs)
		if in.ShowValues {
			graph.Series = append(graph.Series, chart.LastValueAnnotationSeries(cs))
		}
	}

	if in.Legend != "" && in.Legend != "none" && len(in.Series) > 1 {
		switch in.Legend {
		case "top", "bottom":
			graph.Elements = []chart.Renderable{chart.LegendThin(&graph)}
		default:
			graph.Elements = []chart.Renderable{chart.Legend(&graph)}
		}
	}

	return renderPNG(func(w *bytes.Buffer) error { return graph.Render(chart.PNG, w) })
}

func renderColumn(ctx Context, in Input) ([]byte, error) {
	s := in.Series[0]
	bars := make([]chart.Value, len(in.Categories))
	for i, cat := range in.Categories {
		bars[i] = chart.Value{
			Value: s.Values[i],
			Label: barLabel(cat, s.Values[i], in.ShowValues),
			Style: chart.Style{
				FillColor:   paletteColor(in.Palette, i),
				StrokeColor: paletteColor(in.Palette, i),
			},
		}
	}

	graph := chart.BarChart{
		Title:      in.Title,
		TitleStyle: chart.Style{FontSize: titleSize(in)},
		Width:      ctx.PixelWidth,
		Height:     ctx.PixelHeight,
		DPI:        ctx.DPI,
		BarWidth:   barWidth(ctx, len(in.Categories)),
		YAxis: chart.YAxis{
			Name: in.YLabel,
		},
		Bars: bars,
	}
	return renderPNG(func(w *bytes.Buffer) error { return graph.Render(chart.PNG, w) })
}

// renderStacked draws both stacked kinds and multi-series grouped data.
// Bars are padded with a transparent filler so every stack spans the same
// total and bar lengths stay comparable across categories.
func renderStacked(ctx Context, in Input, horizontal bool) ([]byte, error) {
	var maxTotal float64
	totals := make([]float64, len(in.Categories))
	for ci := range in.Categories {
		for _, s := range in.Series {
			if s.Values[ci] > 0 {
				totals[ci] += s.Values[ci]
			}
		}
		if totals[ci] > maxTotal {
			maxTotal = totals[ci]
		}
	}
	if maxTotal <= 0 {
		return nil, fmt.Errorf("chart has no positive values to stack")
	}

	width := barWidth(ctx, len(in.Categories))
	bars := make([]chart.StackedBar, 0, len(in.Categories))
	for ci, cat := range in.Categories {
		bar := chart.StackedBar{Name: cat, Width: width}
		for si, s := range in.Series {
			v := s.Values[ci]
			if v <= 0 {
				continue
			}
			bar.Values = append(bar.Values, chart.Value{
				Value: v,
				Label: segmentLabel(s.Name, v, in, len(in.Series) > 1),
				Style: chart.Style{
					FillColor:   paletteColor(in.Palette, si),
					StrokeColor: paletteColor(in.Palette, si),
				},
			})
		}
		if filler := maxTotal - totals[ci]; filler > 0 {
			bar.Values = append(bar.Values, chart.Value{
				Value: filler,
				Style: chart.Style{
					FillColor:   drawing.ColorTransparent,
					StrokeColor: drawing.ColorTransparent,
				},
			})
		}
		if len(bar.Values) > 0 {
			bars = append(bars, bar)
		}
	}

	graph := chart.StackedBarChart{
		Title:        in.Title,
		TitleStyle:   chart.Style{FontSize: titleSize(in)},
		Width:        ctx.PixelWidth,
		Height:       ctx.PixelHeight,
		DPI:          ctx.DPI,
		IsHorizontal: horizontal,
		Bars:         bars,
	}
	return renderPNG(func(w *bytes.Buffer) error { return graph.Render(chart.PNG, w) })
}

func renderPie(ctx Context, in Input) ([]byte, error) {
	// One slice per category, summed across series.
	values := make([]chart.Value, 0, len(in.Categories))
	for ci, cat := range in.Categories {
		var total float64
		for _, s := range in.Series {
			if s.Values[ci] > 0 {
				total += s.Values[ci]
			}
		}
		if total <= 0 {
			continue
		}
		label := cat
		if in.ShowValues {
			label = fmt.Sprintf("%s (%s)", cat, formatValue(total))
		}
		values = append(values, chart.Value{
			Value: total,
			Label: label,
			Style: chart.Style{
				FillColor:   paletteColor(in.Palette, ci),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 1.0,
				FontSize:    labelSize(in),
			},
		})
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("pie chart has no positive values")
	}

	graph := chart.PieChart{
		Title:      in.Title,
		TitleStyle: chart.Style{FontSize: titleSize(in)},
		Width:      ctx.PixelWidth,
		Height:     ctx.PixelHeight,
		DPI:        ctx.DPI,
		Values:     values,
	}
	return renderPNG(func(w *bytes.Buffer) error { return graph.Render(chart.PNG, w) })
}

func renderPNG(render func(*bytes.Buffer) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.Bytes(), nil
}

// categoryTicks labels integer x positions with category names, thinning
// to at most 12 labels so long axes stay readable.
func categoryTicks(categories []string) []chart.Tick {
	step := 1
	if len(categories) > 12 {
		step = (len(categories) + 11) / 12
	}
	var ticks []chart.Tick
	for i, cat := range categories {
		label := cat
		if i%step != 0 {
			label = ""
		}
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: label})
	}
	return ticks
}

func paletteColor(palette []string, i int) drawing.Color {
	hex := palette[i%len(palette)]
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func barWidth(ctx Context, categories int) int {
	if categories < 1 {
		categories = 1
	}
	w := (ctx.PixelWidth - 100) / categories
	if w < 20 {
		w = 20
	}
	if w > 200 {
		w = 200
	}
	return w
}

// segmentLabel labels one stacked-bar segment. The bar kinds have no
// legend box, so series names ride on the segments unless the legend is
// explicitly turned off.
func segmentLabel(seriesName string, v float64, in Input, multi bool) string {
	label := seriesName
	if !multi || in.Legend == "none" {
		label = ""
	}
	if in.ShowValues {
		label = strings.TrimSpace(label + " " + formatValue(v))
	}
	return label
}

func barLabel(category string, value float64, showValues bool) string {
	if showValues {
		return fmt.Sprintf("%s (%s)", category, formatValue(value))
	}
	return category
}

func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func titleSize(in Input) float64 {
	if in.FontSize > 0 {
		return in.FontSize + 4
	}
	return 14
}

func labelSize(in Input) float64 {
	if in.FontSize > 0 {
		return in.FontSize
	}
	return 10
}
