package datamap

import (
	"path/filepath"
	"sort"

	"reportforge/template"
)

// Mapper owns a loaded dataset and produces independent slices for
// components. Column selections that name absent columns are dropped
// silently; the dataset itself is never mutated.
type Mapper struct {
	path    string
	dataset *Dataset
}

// NewMapper loads the dataset at path and wraps it in a Mapper.
func NewMapper(path, sheet string) (*Mapper, error) {
	ds, err := LoadDataset(path, sheet)
	if err != nil {
		return nil, err
	}
	return &Mapper{path: path, dataset: ds}, nil
}

// NewMapperFromDataset wraps an in-memory dataset, used by tests and by
// callers that already hold the rows.
func NewMapperFromDataset(path string, ds *Dataset) *Mapper {
	return &Mapper{path: path, dataset: ds}
}

// Columns returns the dataset's column names.
func (m *Mapper) Columns() []string {
	return append([]string{}, m.dataset.Columns...)
}

// RowCount returns the number of data rows.
func (m *Mapper) RowCount() int {
	return len(m.dataset.Rows)
}

// FileName returns the base name of the source file.
func (m *Mapper) FileName() string {
	return filepath.Base(m.path)
}

// SliceFor shapes the dataset for one component: select the requested
// columns, rename them per the column mapping, sort, then truncate to
// the top N rows. Every step tolerates absent columns.
func (m *Mapper) SliceFor(src template.DataSource) *Slice {
	// 1. Column selection. No selection means every column. Requested
	// columns that do not exist are dropped without error.
	selected := src.Columns
	if len(selected) == 0 {
		selected = m.dataset.Columns
	}
	var idxs []int
	var names []string
	for _, want := range selected {
		for i, have := range m.dataset.Columns {
			if have == want {
				idxs = append(idxs, i)
				names = append(names, have)
				break
			}
		}
	}

	out := &Slice{Columns: names}
	for _, row := range m.dataset.Rows {
		cells := make([]string, len(idxs))
		for i, idx := range idxs {
			cells[i] = cellAt(row, idx)
		}
		out.Rows = append(out.Rows, cells)
	}

	// 2. Rename per mapping. Mappings for absent columns are ignored.
	if len(src.ColumnMapping) > 0 {
		for i, name := range out.Columns {
			if renamed, ok := src.ColumnMapping[name]; ok {
				out.Columns[i] = renamed
			}
		}
	}

	// 3. Sort, numerically when both cells parse, lexically otherwise.
	if src.SortBy != "" {
		if idx := out.ColumnIndex(src.SortBy); idx >= 0 {
			sort.SliceStable(out.Rows, func(a, b int) bool {
				va, vb := cellAt(out.Rows[a], idx), cellAt(out.Rows[b], idx)
				fa, oka := ParseNumber(va)
				fb, okb := ParseNumber(vb)
				var less, eq bool
				if oka && okb {
					less, eq = fa < fb, fa == fb
				} else {
					less, eq = va < vb, va == vb
				}
				if eq {
					return false
				}
				if src.Ascending {
					return less
				}
				return !less
			})
		}
	}

	// 4. Truncate
	if src.TopN > 0 && len(out.Rows) > src.TopN {
		out.Rows = out.Rows[:src.TopN]
	}
	return out
}

// FilterRows returns a slice of the full dataset keeping (or, with
// exclude, removing) rows whose cell in column matches one of values.
func (m *Mapper) FilterRows(column string, values []string, exclude bool) *Slice {
	full := m.SliceFor(template.DataSource{})
	idx := full.ColumnIndex(column)
	if idx < 0 {
		return full
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	out := &Slice{Columns: full.Columns}
	for _, row := range full.Rows {
		if set[cellAt(row, idx)] != exclude {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// UniqueValues returns the distinct non-null values of a column, in
// first-seen order.
func (m *Mapper) UniqueValues(column string) []string {
	full := m.SliceFor(template.DataSource{})
	idx := full.ColumnIndex(column)
	if idx < 0 {
		return nil
	}
	seen := map[string]bool{}
	var out []string
	for _, row := range full.Rows {
		v := cellAt(row, idx)
		if IsNull(v) || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
