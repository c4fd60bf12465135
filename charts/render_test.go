package charts

import (
	"bytes"
	"testing"

	"reportforge/datamap"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func testSlice() *datamap.Slice {
	return &datamap.Slice{
		Columns: []string{"Region", "Quarter", "Revenue"},
		Rows: [][]string{
			{"North", "Q1", "120"},
			{"South", "Q1", "80"},
			{"North", "Q2", "150"},
			{"South", "Q2", "90"},
			{"North", "Q1", "30"}, // duplicate cell, sums with the first
			{"", "Q1", "999"},     // null x, dropped
			{"West", "Q1", ""},    // null y, dropped
		},
	}
}

func TestBuildSeriesPivot(t *testing.T) {
	categories, series := BuildSeries(testSlice(), "Region", "Revenue", "Quarter")

	if want := []string{"North", "South"}; len(categories) != 2 || categories[0] != want[0] || categories[1] != want[1] {
		t.Fatalf("categories = %v, want %v", categories, want)
	}
	if len(series) != 2 {
		t.Fatalf("series count = %d, want 2", len(series))
	}
	if series[0].Name != "Q1" || series[1].Name != "Q2" {
		t.Fatalf("series names = %s, %s", series[0].Name, series[1].Name)
	}
	// North Q1 sums 120 + 30
	if series[0].Values[0] != 150 {
		t.Errorf("North Q1 = %g, want 150", series[0].Values[0])
	}
	if series[1].Values[1] != 90 {
		t.Errorf("South Q2 = %g, want 90", series[1].Values[1])
	}
}

func TestBuildSeriesSingle(t *testing.T) {
	categories, series := BuildSeries(testSlice(), "Region", "Revenue", "")
	if len(series) != 1 || series[0].Name != "Revenue" {
		t.Fatalf("expected single series named after the y column, got %+v", series)
	}
	if len(categories) != 2 {
		t.Fatalf("categories = %v", categories)
	}
}

func TestBuildSeriesMissingColumn(t *testing.T) {
	categories, series := BuildSeries(testSlice(), "Region", "Nope", "")
	if categories != nil || series != nil {
		t.Fatalf("expected nothing for a missing y column, got %v / %v", categories, series)
	}
}

func TestRenderKinds(t *testing.T) {
	ctx := Resolve(6, 4, 0)
	categories, series := BuildSeries(testSlice(), "Region", "Revenue", "Quarter")

	for _, kind := range []string{KindColumn, KindBar, KindLine, KindPie, KindStackedColumn, KindStackedBar} {
		t.Run(kind, func(t *testing.T) {
			png, err := Render(ctx, Input{
				Kind:       kind,
				Categories: categories,
				Series:     series,
				Legend:     "none",
			})
			if err != nil {
				t.Fatalf("Render(%s) error: %v", kind, err)
			}
			if !bytes.HasPrefix(png, pngMagic) {
				t.Fatalf("Render(%s) did not produce a PNG", kind)
			}
		})
	}
}

func TestRenderEmptyInput(t *testing.T) {
	ctx := Resolve(6, 4, 0)
	if _, err := Render(ctx, Input{Kind: KindColumn}); err == nil {
		t.Fatal("expected an error for empty input")
	}
}

func TestRenderUnknownKind(t *testing.T) {
	ctx := Resolve(6, 4, 0)
	_, err := Render(ctx, Input{
		Kind:       "sparkline",
		Categories: []string{"a"},
		Series:     []Series{{Name: "v", Values: []float64{1}}},
	})
	if err == nil {
		t.Fatal("expected an error for an unknown kind")
	}
}

func TestSegmentLabel(t *testing.T) {
	tests := []struct {
		name   string
		legend string
		show   bool
		multi  bool
		want   string
	}{
		{"multi series names the segment", "right", false, true, "Q1"},
		{"legend none drops the name", "none", false, true, ""},
		{"legend none keeps the value", "none", true, true, "150"},
		{"single series has no name", "", true, false, "150"},
		{"name and value together", "right", true, true, "Q1 150"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Input{Legend: tt.legend, ShowValues: tt.show}
			if got := segmentLabel("Q1", 150, in, tt.multi); got != tt.want {
				t.Errorf("segmentLabel = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderPaletteCycles(t *testing.T) {
	ctx := Resolve(6, 4, 0)

	// More series than palette entries must not panic or error.
	var series []Series
	categories := []string{"only"}
	for i := 0; i < 10; i++ {
		series = append(series, Series{Name: string(rune('a' + i)), Values: []float64{float64(i + 1)}})
	}
	png, err := Render(ctx, Input{
		Kind:       KindStackedColumn,
		Categories: categories,
		Series:     series,
		Palette:    []string{"#2563EB", "#10B981"},
	})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Fatal("expected a PNG")
	}
}
