package generate

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reportforge/datamap"
	"reportforge/logger"
	"reportforge/template"
)

const testCSV = `Company,Region,Revenue
Acme,North,1200
Globex,South,800
Initech,North,1500
`

func writeTestData(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "sales.csv")
	if err := os.WriteFile(path, []byte(testCSV), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testTemplate() *template.Template {
	return &template.Template{
		Metadata: template.Metadata{Name: "Sales Review"},
		Settings: template.Settings{
			PageAspectRatio: "16:9",
			TitleSlide:      template.TitleSlide{Title: "Sales {year}", Subtitle: "Prepared from {file_name}"},
		},
		Slides: []template.Slide{
			{
				Name: "Overview",
				Components: []template.ComponentConfig{
					{
						Type:     template.TypeText,
						Position: template.Position{X: 0.4, Y: 0.3},
						Size:     template.Size{Width: 9, Height: 0.6},
						Content:  "Revenue overview ({row_count} rows)",
					},
					{
						Type:      template.TypeChart,
						Position:  template.Position{X: 0.4, Y: 1.2},
						Size:      template.Size{Width: 9, Height: 3.8},
						ChartType: template.ChartColumn,
						Data:      template.DataSource{XColumn: "Company", YColumn: "Revenue"},
					},
				},
			},
			{
				Name: "Details",
				Components: []template.ComponentConfig{
					{
						Type:     template.TypeTable,
						Position: template.Position{X: 0.4, Y: 1},
						Size:     template.Size{Width: 9, Height: 3.5},
						Data:     template.DataSource{Columns: []string{"Company", "Region", "Revenue"}},
					},
				},
			},
		},
	}
}

func TestGenerateEndToEnd(t *testing.T) {
	dir := t.TempDir()
	dataPath := writeTestData(t, dir)
	outPath := filepath.Join(dir, "out.pptx")

	gen := &Generator{OutputDir: dir}
	path, warnings, err := gen.Generate(testTemplate(), dataPath, Options{OutputPath: outPath})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if path != outPath {
		t.Errorf("path = %q, want %q", path, outPath)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %+v", warnings)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if info.Size() < 1000 {
		t.Errorf("output suspiciously small: %d bytes", info.Size())
	}

	// PPTX is a zip archive
	data, _ := os.ReadFile(outPath)
	if len(data) < 2 || data[0] != 'P' || data[1] != 'K' {
		t.Error("output is not a zip archive")
	}
}

func TestGenerateIsolatesComponentFailures(t *testing.T) {
	dir := t.TempDir()
	dataPath := writeTestData(t, dir)

	tpl := testTemplate()
	// Break the chart config; the rest of the deck still renders.
	tpl.Slides[0].Components[1].ChartType = ""
	outPath := filepath.Join(dir, "broken.pptx")

	gen := &Generator{OutputDir: dir}
	path, warnings, err := gen.Generate(tpl, dataPath, Options{OutputPath: outPath})
	if err != nil {
		t.Fatalf("Generate should survive a bad component: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %+v, want exactly one", warnings)
	}
	w := warnings[0]
	if w.Slide != 0 || w.Component != 1 || w.Kind != template.TypeChart {
		t.Errorf("warning location = %+v", w)
	}
	if !strings.Contains(w.Reason, "chart_type") {
		t.Errorf("warning reason = %q", w.Reason)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("presentation was not written despite isolation: %v", err)
	}
}

func TestGenerateWarnsOnMissingChartColumn(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "thin.csv")
	if err := os.WriteFile(dataPath, []byte("Company,Region\nAcme,North\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tpl := testTemplate()
	tpl.Slides[0].Components[1].Data.YColumn = "Total"
	outPath := filepath.Join(dir, "thin.pptx")

	gen := &Generator{OutputDir: dir}
	path, warnings, err := gen.Generate(tpl, dataPath, Options{OutputPath: outPath})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %+v, want exactly one", warnings)
	}
	w := warnings[0]
	if w.Slide != 0 || w.Component != 1 || w.Kind != template.TypeChart {
		t.Errorf("warning location = %+v", w)
	}
	if !strings.Contains(w.Reason, `"Total"`) || !strings.Contains(w.Reason, "not found") {
		t.Errorf("warning reason = %q", w.Reason)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("presentation was not written: %v", err)
	}
}

func TestGenerateLogsValidationProblems(t *testing.T) {
	dir := t.TempDir()
	dataPath := writeTestData(t, dir)

	log := logger.NewLogger()
	if err := log.Init(dir); err != nil {
		t.Fatal(err)
	}

	tpl := testTemplate()
	tpl.Slides[0].Components[1].ChartType = ""

	gen := &Generator{OutputDir: dir, Log: log}
	if _, _, err := gen.Generate(tpl, dataPath, Options{OutputPath: filepath.Join(dir, "v.pptx")}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	log.Close()

	files, err := filepath.Glob(filepath.Join(dir, "*.log"))
	if err != nil || len(files) == 0 {
		t.Fatalf("no log file written: %v", err)
	}
	data, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "validation problems") {
		t.Error("validation aggregate was not logged before rendering")
	}
	if !strings.Contains(string(data), "chart_type") {
		t.Error("individual validation problem was not logged")
	}
}

func TestGenerateFatalOnMissingDataset(t *testing.T) {
	gen := &Generator{}
	_, _, err := gen.Generate(testTemplate(), filepath.Join(t.TempDir(), "nope.csv"), Options{})
	if err == nil {
		t.Fatal("expected error")
	}
	var lerr *datamap.LoadError
	if !errors.As(err, &lerr) {
		t.Errorf("error type = %T, want *datamap.LoadError", err)
	}
}

func TestGenerateRejectsEmptyTemplate(t *testing.T) {
	gen := &Generator{}
	tpl := &template.Template{Metadata: template.Metadata{Name: "Empty"}}
	if _, _, err := gen.Generate(tpl, "ignored.csv", Options{}); err == nil {
		t.Fatal("expected error for a template with no slides")
	}
}

func TestGenerateDefaultOutputPath(t *testing.T) {
	gen := &Generator{OutputDir: "/tmp/out"}
	path := gen.defaultOutputPath(testTemplate())
	if !strings.HasPrefix(path, "/tmp/out/Sales_Review_") || !strings.HasSuffix(path, ".pptx") {
		t.Errorf("default path = %q", path)
	}
}

func TestBatchRun(t *testing.T) {
	dir := t.TempDir()
	dataPath := writeTestData(t, dir)

	// Persist a template for the runner to load.
	mgr := template.NewManager(dir)
	tplPath := filepath.Join(dir, "deck.json")
	if err := mgr.Save(testTemplate(), tplPath); err != nil {
		t.Fatal(err)
	}

	runner := &Runner{
		Generator: &Generator{OutputDir: dir},
		Templates: mgr,
	}
	jobs := []Job{
		{TemplatePath: tplPath, DataPath: dataPath, OutputPath: filepath.Join(dir, "one.pptx")},
		{TemplatePath: tplPath, DataPath: filepath.Join(dir, "missing.csv")},
		{TemplatePath: filepath.Join(dir, "missing.json"), DataPath: dataPath},
	}

	summary := runner.Run(jobs)
	if summary.Total != 3 || summary.Succeeded != 1 || summary.Failed != 2 {
		t.Fatalf("summary = %+v", summary)
	}
	if summary.SuccessRate != "33.3%" {
		t.Errorf("success rate = %q", summary.SuccessRate)
	}
	if summary.Results[0].Output == "" || summary.Results[1].Error == "" || summary.Results[2].Error == "" {
		t.Errorf("results = %+v", summary.Results)
	}

	// The summary must serialize for batch report output.
	if _, err := json.Marshal(summary); err != nil {
		t.Errorf("summary not serializable: %v", err)
	}
}
