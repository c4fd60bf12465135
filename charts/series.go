package charts

import (
	"strconv"

	"reportforge/datamap"
)

// Series is one plotted value sequence, aligned with the category list.
type Series struct {
	Name   string
	Values []float64
}

// BuildSeries assembles chart data from a slice: categories from the x
// column, one series per distinct value of the series column (or a single
// series named after the y column without one). Rows with a null x or y
// cell are dropped first; duplicate (category, series) cells sum.
func BuildSeries(slice *datamap.Slice, xColumn, yColumn, seriesColumn string) (categories []string, series []Series) {
	cols := []string{yColumn}
	if xColumn != "" {
		cols = append(cols, xColumn)
	}
	clean := slice.DropNull(cols...)

	xIdx := clean.ColumnIndex(xColumn)
	yIdx := clean.ColumnIndex(yColumn)
	sIdx := clean.ColumnIndex(seriesColumn)
	if yIdx < 0 {
		return nil, nil
	}

	catIndex := map[string]int{}
	serIndex := map[string]int{}
	type cell struct{ cat, ser int }
	sums := map[cell]float64{}

	for i, row := range clean.Rows {
		y, ok := datamap.ParseNumber(cellValue(row, yIdx))
		if !ok {
			continue
		}

		cat := cellValue(row, xIdx)
		if xIdx < 0 {
			cat = rowLabel(i)
		}
		ci, seen := catIndex[cat]
		if !seen {
			ci = len(categories)
			catIndex[cat] = ci
			categories = append(categories, cat)
		}

		ser := yColumn
		if sIdx >= 0 {
			ser = cellValue(row, sIdx)
		}
		si, seen := serIndex[ser]
		if !seen {
			si = len(series)
			serIndex[ser] = si
			series = append(series, Series{Name: ser})
		}

		sums[cell{ci, si}] += y
	}

	for si := range series {
		series[si].Values = make([]float64, len(categories))
		for ci := range categories {
			series[si].Values[ci] = sums[cell{ci, si}]
		}
	}
	return categories, series
}

func cellValue(row []string, idx int) string {
	if idx >= 0 && idx < len(row) {
		return row[idx]
	}
	return ""
}

func rowLabel(i int) string {
	// Pie charts without an x column label slices by row position.
	return "Row " + strconv.Itoa(i+1)
}
