package datamap

import (
	"fmt"
	"strings"
	"time"
)

// Variables is the substitution set for {name} placeholders in text
// content and slide names.
type Variables map[string]string

// Variables builds the default variable set: current date parts, dataset
// metadata, and the caller's extras. Extras win over defaults.
func (m *Mapper) Variables(extra map[string]string) Variables {
	now := time.Now()
	v := Variables{
		"date":  now.Format("2006-01-02"),
		"time":  now.Format("15:04"),
		"year":  now.Format("2006"),
		"month": now.Format("January"),
		"day":   now.Format("2"),

		"row_count":    fmt.Sprintf("%d", m.RowCount()),
		"column_count": fmt.Sprintf("%d", len(m.dataset.Columns)),
		"columns":      strings.Join(m.dataset.Columns, ", "),
		"file_name":    m.FileName(),
	}
	for k, val := range extra {
		v[k] = val
	}
	return v
}

// Expand substitutes every {name} placeholder present in the set.
// Unknown placeholders are left as written.
func (v Variables) Expand(s string) string {
	for name, val := range v {
		s = strings.ReplaceAll(s, "{"+name+"}", val)
	}
	return s
}
