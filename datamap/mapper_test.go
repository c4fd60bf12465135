package datamap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"reportforge/template"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const salesCSV = `Company,Region,Revenue,Units
Acme,North,1200,10
Globex,South,800,7
Initech,North,1500,12
Umbrella,West,400,3
Hooli,South,,5
`

func TestLoadCSV(t *testing.T) {
	m, err := NewMapper(writeCSV(t, salesCSV), "")
	if err != nil {
		t.Fatalf("NewMapper: %v", err)
	}
	if got := m.RowCount(); got != 5 {
		t.Errorf("rows = %d, want 5", got)
	}
	cols := m.Columns()
	if len(cols) != 4 || cols[0] != "Company" {
		t.Errorf("columns = %v", cols)
	}
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Name", "Score"},
		{"a", 1},
		{"b", 2},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()

	m, err := NewMapper(path, "")
	if err != nil {
		t.Fatalf("NewMapper: %v", err)
	}
	if m.RowCount() != 2 {
		t.Errorf("rows = %d, want 2", m.RowCount())
	}

	if _, err := NewMapper(path, "NoSuchSheet"); err == nil {
		t.Error("expected error for unknown sheet")
	}
}

func TestLoadFileWithoutColumns(t *testing.T) {
	_, err := NewMapper(writeCSV(t, ""), "")
	if err == nil {
		t.Fatal("expected error for a file with no columns")
	}
	lerr, ok := err.(*LoadError)
	if !ok {
		t.Fatalf("error type = %T, want *LoadError", err)
	}
	if !strings.Contains(lerr.Error(), "no columns") {
		t.Errorf("error = %v", lerr)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewMapper(filepath.Join(t.TempDir(), "nope.csv"), "")
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := err.(*LoadError); !ok {
		t.Fatalf("error type = %T, want *LoadError", err)
	}
}

func TestSliceForSelectsAndRenames(t *testing.T) {
	m, err := NewMapper(writeCSV(t, salesCSV), "")
	if err != nil {
		t.Fatal(err)
	}

	slice := m.SliceFor(template.DataSource{
		Columns:       []string{"Company", "Revenue", "DoesNotExist"},
		ColumnMapping: map[string]string{"Revenue": "Total", "Ghost": "Ignored"},
	})

	if len(slice.Columns) != 2 {
		t.Fatalf("columns = %v, want the missing one dropped silently", slice.Columns)
	}
	if slice.Columns[1] != "Total" {
		t.Errorf("rename failed: %v", slice.Columns)
	}
	if len(slice.Rows) != 5 {
		t.Errorf("rows = %d", len(slice.Rows))
	}
}

func TestSliceForSortAndTopN(t *testing.T) {
	m, err := NewMapper(writeCSV(t, salesCSV), "")
	if err != nil {
		t.Fatal(err)
	}

	slice := m.SliceFor(template.DataSource{
		Columns: []string{"Company", "Revenue"},
		SortBy:  "Revenue",
		TopN:    2,
	})
	if len(slice.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(slice.Rows))
	}
	// Descending by default: Initech (1500) then Acme (1200)
	if slice.Rows[0][0] != "Initech" || slice.Rows[1][0] != "Acme" {
		t.Errorf("order = %v", slice.Rows)
	}

	asc := m.SliceFor(template.DataSource{
		Columns:   []string{"Company", "Units"},
		SortBy:    "Units",
		Ascending: true,
		TopN:      1,
	})
	if asc.Rows[0][0] != "Umbrella" {
		t.Errorf("ascending sort order = %v", asc.Rows)
	}
}

func TestSliceIndependence(t *testing.T) {
	m, err := NewMapper(writeCSV(t, salesCSV), "")
	if err != nil {
		t.Fatal(err)
	}
	a := m.SliceFor(template.DataSource{})
	a.Rows[0][0] = "mutated"
	a.Columns[0] = "mutated"

	b := m.SliceFor(template.DataSource{})
	if b.Rows[0][0] == "mutated" || b.Columns[0] == "mutated" {
		t.Fatal("slices share storage with the dataset")
	}
}

func TestDropNull(t *testing.T) {
	m, err := NewMapper(writeCSV(t, salesCSV), "")
	if err != nil {
		t.Fatal(err)
	}
	slice := m.SliceFor(template.DataSource{})
	clean := slice.DropNull("Revenue")
	if len(clean.Rows) != 4 {
		t.Errorf("rows after DropNull = %d, want 4 (Hooli has no revenue)", len(clean.Rows))
	}
	// Absent columns are ignored
	same := slice.DropNull("Missing")
	if len(same.Rows) != 5 {
		t.Errorf("DropNull on a missing column removed rows: %d", len(same.Rows))
	}
}

func TestSummaryStats(t *testing.T) {
	m, err := NewMapper(writeCSV(t, salesCSV), "")
	if err != nil {
		t.Fatal(err)
	}
	slice := m.SliceFor(template.DataSource{})

	stats, ok := slice.SummaryStats("Revenue")
	if !ok {
		t.Fatal("column not found")
	}
	if stats.Count != 4 {
		t.Errorf("count = %d, want 4", stats.Count)
	}
	if stats.Sum != 3900 {
		t.Errorf("sum = %g, want 3900", stats.Sum)
	}
	if stats.Min != 400 || stats.Max != 1500 {
		t.Errorf("min/max = %g/%g", stats.Min, stats.Max)
	}
	if stats.Median != 1000 {
		t.Errorf("median = %g, want 1000", stats.Median)
	}

	if _, ok := slice.SummaryStats("Company"); !ok {
		t.Error("text column should report ok with count 0")
	}
	if s, _ := slice.SummaryStats("Company"); s.Count != 0 {
		t.Errorf("text column count = %d", s.Count)
	}

	if _, ok := slice.SummaryStats("Missing"); ok {
		t.Error("missing column should report not ok")
	}
}

func TestVariables(t *testing.T) {
	m, err := NewMapper(writeCSV(t, salesCSV), "")
	if err != nil {
		t.Fatal(err)
	}

	vars := m.Variables(map[string]string{"client": "Acme", "date": "override"})
	if vars["row_count"] != "5" {
		t.Errorf("row_count = %q", vars["row_count"])
	}
	if vars["file_name"] != "data.csv" {
		t.Errorf("file_name = %q", vars["file_name"])
	}
	if vars["date"] != "override" {
		t.Errorf("override lost: %q", vars["date"])
	}

	got := vars.Expand("Report for {client} ({row_count} rows) {unknown}")
	want := "Report for Acme (5 rows) {unknown}"
	if got != want {
		t.Errorf("Expand = %q, want %q", got, want)
	}
}

func TestFilterAndUnique(t *testing.T) {
	m, err := NewMapper(writeCSV(t, salesCSV), "")
	if err != nil {
		t.Fatal(err)
	}

	north := m.FilterRows("Region", []string{"North"}, false)
	if len(north.Rows) != 2 {
		t.Errorf("north rows = %d", len(north.Rows))
	}
	notNorth := m.FilterRows("Region", []string{"North"}, true)
	if len(notNorth.Rows) != 3 {
		t.Errorf("excluded rows = %d", len(notNorth.Rows))
	}

	regions := m.UniqueValues("Region")
	want := []string{"North", "South", "West"}
	if len(regions) != len(want) {
		t.Fatalf("regions = %v", regions)
	}
	for i := range want {
		if regions[i] != want[i] {
			t.Errorf("regions = %v, want %v", regions, want)
		}
	}
}

func TestEmptyDataset(t *testing.T) {
	m, err := NewMapper(writeCSV(t, "OnlyHeader,Columns\n"), "")
	if err != nil {
		t.Fatal(err)
	}
	if m.RowCount() != 0 {
		t.Errorf("rows = %d", m.RowCount())
	}
	slice := m.SliceFor(template.DataSource{SortBy: "OnlyHeader", TopN: 3})
	if !slice.IsEmpty() {
		t.Error("expected an empty slice")
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1200", 1200, true},
		{" 1,234.5 ", 1234.5, true},
		{"-3", -3, true},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseNumber(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseNumber(%q) = %g, %t", tt.in, got, ok)
		}
	}
}
