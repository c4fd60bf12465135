package component

import (
	"fmt"
	"sort"
	"strconv"

	ppt "github.com/VantageDataChat/GoPPT"

	"reportforge/datamap"
	"reportforge/template"
)

// summaryComponent derives short textual insights from the dataset slice
// and renders them as bullets, a numbered list or callout boxes.
type summaryComponent struct {
	cfg template.ComponentConfig
}

func (c *summaryComponent) Kind() string { return template.TypeSummary }

func (c *summaryComponent) DataSource() template.DataSource { return c.cfg.Data }

func (c *summaryComponent) Render(slide *ppt.Slide, slice *datamap.Slice, env *Env) error {
	src := c.cfg.Data
	maxItems := src.MaxItems
	if maxItems <= 0 {
		maxItems = 5
	}

	insights := buildInsights(slice, src)
	if len(insights) > maxItems {
		insights = insights[:maxItems]
	}
	if len(insights) == 0 {
		renderPlaceholder(slide, c.cfg.Position, c.cfg.Size, "No insights available")
		return nil
	}

	switch c.cfg.Style.Layout {
	case "callout_boxes":
		c.renderCallouts(slide, insights, env)
	case "numbered":
		c.renderList(slide, insights, env, true)
	default:
		c.renderList(slide, insights, env, false)
	}
	return nil
}

func (c *summaryComponent) renderList(slide *ppt.Slide, insights []string, env *Env, numbered bool) {
	shape := slide.CreateRichTextShape()
	place(shape, c.cfg.Position, c.cfg.Size)

	size := fontSizeOr(c.cfg.Style, env, 12)
	color := textColorOr(c.cfg.Style.Color, env)

	for i, insight := range insights {
		if i > 0 {
			shape.CreateParagraph()
		}
		prefix := "• "
		if numbered {
			prefix = strconv.Itoa(i+1) + ". "
		}
		tr := shape.CreateTextRun(prefix + insight)
		tr.GetFont().SetSize(size).SetColor(ppt.NewColor(color))
	}
}

func (c *summaryComponent) renderCallouts(slide *ppt.Slide, insights []string, env *Env) {
	pos := c.cfg.Position
	boxH := c.cfg.Size.Height / float64(len(insights))
	if boxH > 0.8 {
		boxH = 0.8
	}
	gap := 0.08

	highlight := c.cfg.Style.HighlightColor
	if highlight == "" {
		highlight = "#F8FAFC"
	}
	size := fontSizeOr(c.cfg.Style, env, 12)
	color := textColorOr(c.cfg.Style.Color, env)

	y := pos.Y
	for _, insight := range insights {
		box := slide.CreateRichTextShape()
		box.SetOffsetX(EMU(pos.X)).SetOffsetY(EMU(y))
		box.SetWidth(EMU(c.cfg.Size.Width)).SetHeight(EMU(boxH - gap))
		box.SetFill(solidFill(argb(highlight)))

		tr := box.CreateTextRun(insight)
		tr.GetFont().SetSize(size).SetColor(ppt.NewColor(color))
		alignCenter(box.GetActiveParagraph())

		y += boxH
	}
}

// buildInsights runs each requested insight generator over the slice.
// Generators that find nothing contribute nothing.
func buildInsights(slice *datamap.Slice, src template.DataSource) []string {
	kinds := src.InsightTypes
	if len(kinds) == 0 {
		kinds = []string{"key_metrics", "highlights"}
	}
	metrics := metricColumns(slice, src.MetricColumns)

	var out []string
	for _, kind := range kinds {
		switch kind {
		case "key_metrics":
			out = append(out, keyMetrics(slice, metrics)...)
		case "trends":
			out = append(out, trendInsights(slice, metrics, src.TimeColumn)...)
		case "highlights":
			out = append(out, highlightInsights(slice, metrics, src.CompareColumn)...)
		case "comparisons":
			out = append(out, comparisonInsights(slice, metrics, src.CompareColumn)...)
		case "top_performers":
			out = append(out, topPerformers(slice, metrics, src.CompareColumn, src.MaxItems)...)
		}
	}
	return out
}

// metricColumns picks the numeric columns to summarize: the configured
// ones that exist, or the first three numeric columns detected.
func metricColumns(slice *datamap.Slice, configured []string) []string {
	if len(configured) > 0 {
		var out []string
		for _, name := range configured {
			if slice.ColumnIndex(name) >= 0 {
				out = append(out, name)
			}
		}
		return out
	}
	var out []string
	for _, name := range slice.Columns {
		if values, ok := slice.Numeric(name); ok && len(values) > 0 {
			out = append(out, name)
			if len(out) == 3 {
				break
			}
		}
	}
	return out
}

func keyMetrics(slice *datamap.Slice, metrics []string) []string {
	var out []string
	for _, col := range metrics {
		stats, ok := slice.SummaryStats(col)
		if !ok || stats.Count == 0 {
			continue
		}
		out = append(out,
			fmt.Sprintf("Total %s: %s", col, humanNumber(stats.Sum)),
			fmt.Sprintf("Average %s: %s", col, humanNumber(stats.Mean)),
		)
	}
	return out
}

// trendInsights compares the first and second half of a metric to call
// the direction. It needs a time column and at least four rows.
func trendInsights(slice *datamap.Slice, metrics []string, timeColumn string) []string {
	if timeColumn == "" || slice.ColumnIndex(timeColumn) < 0 || len(metrics) == 0 {
		return nil
	}
	values, ok := slice.Numeric(metrics[0])
	if !ok || len(values) < 4 {
		return nil
	}
	mid := len(values) / 2
	first := mean(values[:mid])
	second := mean(values[mid:])
	if first == 0 {
		return nil
	}
	change := (second - first) / first * 100
	direction := "upward"
	if change < 0 {
		direction = "downward"
	}
	return []string{fmt.Sprintf("%s trending %s (%+.1f%%)", metrics[0], direction, change)}
}

func highlightInsights(slice *datamap.Slice, metrics []string, compareColumn string) []string {
	if len(metrics) == 0 {
		return nil
	}
	col := metrics[0]
	idx := slice.ColumnIndex(col)
	labelIdx := labelColumnIndex(slice, compareColumn)

	best := -1
	var bestValue float64
	for i, row := range slice.Rows {
		v, ok := datamap.ParseNumber(cellAt(row, idx))
		if !ok {
			continue
		}
		if best < 0 || v > bestValue {
			best, bestValue = i, v
		}
	}
	if best < 0 {
		return nil
	}
	if labelIdx >= 0 {
		return []string{fmt.Sprintf("Highest %s: %s (%s)", col, humanNumber(bestValue), cellAt(slice.Rows[best], labelIdx))}
	}
	return []string{fmt.Sprintf("Highest %s: %s", col, humanNumber(bestValue))}
}

func comparisonInsights(slice *datamap.Slice, metrics []string, compareColumn string) []string {
	if len(metrics) == 0 || compareColumn == "" {
		return nil
	}
	groupIdx := slice.ColumnIndex(compareColumn)
	valueIdx := slice.ColumnIndex(metrics[0])
	if groupIdx < 0 || valueIdx < 0 {
		return nil
	}

	sums := map[string]float64{}
	var order []string
	for _, row := range slice.Rows {
		v, ok := datamap.ParseNumber(cellAt(row, valueIdx))
		if !ok {
			continue
		}
		group := cellAt(row, groupIdx)
		if _, seen := sums[group]; !seen {
			order = append(order, group)
		}
		sums[group] += v
	}
	if len(order) < 2 {
		return nil
	}
	sort.SliceStable(order, func(a, b int) bool { return sums[order[a]] > sums[order[b]] })
	top, runnerUp := order[0], order[1]
	if sums[runnerUp] == 0 {
		return nil
	}
	lead := (sums[top] - sums[runnerUp]) / sums[runnerUp] * 100
	return []string{fmt.Sprintf("%s leads %s by %.1f%% in %s", top, runnerUp, lead, metrics[0])}
}

func topPerformers(slice *datamap.Slice, metrics []string, compareColumn string, maxItems int) []string {
	if len(metrics) == 0 {
		return nil
	}
	valueIdx := slice.ColumnIndex(metrics[0])
	labelIdx := labelColumnIndex(slice, compareColumn)
	if valueIdx < 0 || labelIdx < 0 {
		return nil
	}
	if maxItems <= 0 {
		maxItems = 5
	}

	type entry struct {
		label string
		value float64
	}
	var entries []entry
	for _, row := range slice.Rows {
		v, ok := datamap.ParseNumber(cellAt(row, valueIdx))
		if !ok {
			continue
		}
		entries = append(entries, entry{label: cellAt(row, labelIdx), value: v})
	}
	sort.SliceStable(entries, func(a, b int) bool { return entries[a].value > entries[b].value })
	if len(entries) > maxItems {
		entries = entries[:maxItems]
	}

	var out []string
	for _, e := range entries {
		out = append(out, fmt.Sprintf("%s: %s", e.label, humanNumber(e.value)))
	}
	return out
}

// labelColumnIndex picks the row-label column: the configured compare
// column when present, else the first non-numeric column.
func labelColumnIndex(slice *datamap.Slice, compareColumn string) int {
	if compareColumn != "" {
		if idx := slice.ColumnIndex(compareColumn); idx >= 0 {
			return idx
		}
	}
	for i, name := range slice.Columns {
		values, _ := slice.Numeric(name)
		if len(values) == 0 {
			return i
		}
	}
	return -1
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// humanNumber formats a value with thousands separators, trimming the
// fraction from whole numbers.
func humanNumber(v float64) string {
	if v == float64(int64(v)) {
		return groupThousands(strconv.FormatInt(int64(v), 10))
	}
	return groupThousands(strconv.FormatFloat(v, 'f', 2, 64))
}
