// Package datamap loads tabular datasets and shapes them into the
// per-component slices the rendering components consume.
package datamap

import (
	"strconv"
	"strings"
)

// Dataset is a loaded table: a header row plus string cell rows.
// It is owned by the Mapper; components only ever see Slice copies.
type Dataset struct {
	Columns []string
	Rows    [][]string
}

// Slice is an independent view handed to a component. Mutating a slice
// never affects the dataset or other components.
type Slice struct {
	Columns []string
	Rows    [][]string
}

// IsEmpty reports whether the slice has no rows.
func (s *Slice) IsEmpty() bool {
	return len(s.Rows) == 0
}

// ColumnIndex returns the position of the named column, or -1.
func (s *Slice) ColumnIndex(name string) int {
	for i, c := range s.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns the named column's cells, or nil when absent.
func (s *Slice) Column(name string) []string {
	idx := s.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	out := make([]string, len(s.Rows))
	for i, row := range s.Rows {
		out[i] = cellAt(row, idx)
	}
	return out
}

// Numeric returns the named column coerced to numbers. Unparseable or
// empty cells are skipped; ok is false when the column is absent.
func (s *Slice) Numeric(name string) (values []float64, ok bool) {
	idx := s.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	for _, row := range s.Rows {
		if v, isNum := ParseNumber(cellAt(row, idx)); isNum {
			values = append(values, v)
		}
	}
	return values, true
}

// DropNull returns a copy with every row removed whose cell in any of the
// given columns is null. Absent columns are ignored.
func (s *Slice) DropNull(columns ...string) *Slice {
	var idxs []int
	for _, name := range columns {
		if idx := s.ColumnIndex(name); idx >= 0 {
			idxs = append(idxs, idx)
		}
	}
	out := &Slice{Columns: append([]string{}, s.Columns...)}
	for _, row := range s.Rows {
		keep := true
		for _, idx := range idxs {
			if IsNull(cellAt(row, idx)) {
				keep = false
				break
			}
		}
		if keep {
			out.Rows = append(out.Rows, append([]string{}, row...))
		}
	}
	return out
}

// IsNull reports whether a cell counts as missing data.
func IsNull(cell string) bool {
	v := strings.TrimSpace(cell)
	return v == "" || strings.EqualFold(v, "nan") || strings.EqualFold(v, "null")
}

// ParseNumber coerces a cell to a float, tolerating thousands separators
// and surrounding whitespace.
func ParseNumber(cell string) (float64, bool) {
	v := strings.TrimSpace(cell)
	if v == "" {
		return 0, false
	}
	v = strings.ReplaceAll(v, ",", "")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func cellAt(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
