package component

import (
	"fmt"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"

	"reportforge/datamap"
	"reportforge/template"
)

const (
	tableMaxColumns  = 6
	tableHeaderH     = 0.35
	tableRowH        = 0.28
	tableColumnSplit = "    │    "
)

// tableComponent renders a dataset slice as a zebra-striped table built
// from stacked text shapes.
type tableComponent struct {
	cfg template.ComponentConfig
}

func (c *tableComponent) Kind() string { return template.TypeTable }

func (c *tableComponent) DataSource() template.DataSource { return c.cfg.Data }

func (c *tableComponent) Render(slide *ppt.Slide, slice *datamap.Slice, env *Env) error {
	style := c.cfg.Style
	columns := slice.Columns
	colsTruncated := false
	if len(columns) > tableMaxColumns {
		columns = columns[:tableMaxColumns]
		colsTruncated = true
	}
	if len(columns) == 0 {
		renderPlaceholder(slide, c.cfg.Position, c.cfg.Size, "No data available")
		return nil
	}

	scheme := template.ColorScheme{}.WithDefaults()
	if env.Template != nil {
		scheme = env.Template.Settings.ColorScheme.WithDefaults()
	}
	headerFill := style.HeaderColor
	if headerFill == "" {
		headerFill = scheme.Primary
	}
	headerTextColor := style.HeaderTextColor
	rowFillA := style.RowColorA
	if rowFillA == "" {
		rowFillA = "#FFFFFF"
	}
	rowFillB := style.RowColorB
	if rowFillB == "" {
		rowFillB = "#F3F4F6"
	}
	cellColor := textColorOr(style.TextColor, env)
	fontSize := fontSizeOr(style, env, 10)

	pos := c.cfg.Position
	size := c.cfg.Size
	colWidth := size.Width / float64(len(columns))
	y := pos.Y

	// Header row
	if template.BoolOr(style.HeaderRow, true) {
		headerShape := slide.CreateRichTextShape()
		headerShape.SetOffsetX(EMU(pos.X)).SetOffsetY(EMU(y))
		headerShape.SetWidth(EMU(size.Width)).SetHeight(EMU(tableHeaderH))
		headerShape.SetFill(solidFill(argb(headerFill)))

		headerText := joinCells(columns, colWidth)
		tr := headerShape.CreateTextRun(headerText)
		font := tr.GetFont().SetSize(fontSize).SetBold(true)
		if headerTextColor != "" {
			font.SetColor(ppt.NewColor(argb(headerTextColor)))
		} else {
			font.SetColor(ppt.ColorWhite)
		}
		alignCenter(headerShape.GetActiveParagraph())
		y += tableHeaderH
	}

	// Data rows, as many as fit the component box
	maxRows := int((pos.Y + size.Height - y) / tableRowH)
	if maxRows < 0 {
		maxRows = 0
	}
	rowsShown := len(slice.Rows)
	if rowsShown > maxRows {
		rowsShown = maxRows
	}

	zebra := template.BoolOr(style.ZebraStriping, true)
	for rowIdx := 0; rowIdx < rowsShown; rowIdx++ {
		rowShape := slide.CreateRichTextShape()
		rowShape.SetOffsetX(EMU(pos.X)).SetOffsetY(EMU(y))
		rowShape.SetWidth(EMU(size.Width)).SetHeight(EMU(tableRowH))

		if zebra && rowIdx%2 == 1 {
			rowShape.SetFill(solidFill(argb(rowFillB)))
		} else {
			rowShape.SetFill(solidFill(argb(rowFillA)))
		}

		cells := make([]string, len(columns))
		for i := range columns {
			cells[i] = formatCell(cellAt(slice.Rows[rowIdx], i), style.NumberFormat)
		}
		tr := rowShape.CreateTextRun(joinCells(cells, colWidth))
		tr.GetFont().SetSize(fontSize).SetColor(ppt.NewColor(cellColor))
		alignCenter(rowShape.GetActiveParagraph())

		y += tableRowH
	}

	// Truncation note
	if rowsShown < len(slice.Rows) || colsTruncated {
		note := fmt.Sprintf("Showing %d of %d rows", rowsShown, len(slice.Rows))
		if colsTruncated {
			note += " (columns truncated)"
		}
		noteShape := slide.CreateRichTextShape()
		noteShape.SetOffsetX(EMU(pos.X)).SetOffsetY(EMU(y))
		noteShape.SetWidth(EMU(size.Width)).SetHeight(EMU(0.25))
		tr := noteShape.CreateTextRun(note)
		tr.GetFont().SetSize(9).SetColor(ppt.NewColor("FF94A3B8"))
		alignRight(noteShape.GetActiveParagraph())
	}
	return nil
}

// joinCells builds one row line, truncating cells to the space a column
// affords.
func joinCells(cells []string, colWidth float64) string {
	maxLen := int(colWidth * 3.5)
	if maxLen < 12 {
		maxLen = 12
	}
	out := make([]string, len(cells))
	for i, cell := range cells {
		runes := []rune(cell)
		if len(runes) > maxLen {
			cell = string(runes[:maxLen-2]) + ".."
		}
		out[i] = cell
	}
	return strings.Join(out, tableColumnSplit)
}

// formatCell applies the table's number format to numeric cells and
// leaves everything else alone.
func formatCell(cell, numberFormat string) string {
	if numberFormat == "" {
		return cell
	}
	v, ok := datamap.ParseNumber(cell)
	if !ok {
		return cell
	}
	switch numberFormat {
	case "percentage":
		return fmt.Sprintf("%.1f%%", v*100)
	case "currency":
		return "$" + groupThousands(fmt.Sprintf("%.2f", v))
	case "decimal":
		return fmt.Sprintf("%.2f", v)
	default:
		return cell
	}
}

// groupThousands inserts thousands separators into a plain decimal string.
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, frac = s[:dot], s[dot:]
	}
	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}

func cellAt(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
