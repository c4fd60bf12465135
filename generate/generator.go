// Package generate orchestrates presentation generation: it marries a
// template with a dataset and writes the resulting PPTX file.
package generate

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	ppt "github.com/VantageDataChat/GoPPT"

	"reportforge/component"
	"reportforge/datamap"
	"reportforge/logger"
	"reportforge/template"
)

// Options tunes a single generation run.
type Options struct {
	Sheet      string            // Worksheet to load; empty means first
	Variables  map[string]string // Extra {name} substitutions, they win
	OutputPath string            // Target file; empty derives one
}

// Warning records a component that was skipped or degraded. The
// presentation is still produced.
type Warning struct {
	Slide     int    `json:"slide"`
	Component int    `json:"component"`
	Kind      string `json:"kind"`
	Reason    string `json:"reason"`
}

// Generator builds presentations. Zero value works; OutputDir, AssetDirs
// and Log refine behavior.
type Generator struct {
	OutputDir string
	AssetDirs []string
	Log       *logger.Logger
}

// Generate renders the template against the dataset at dataPath and
// writes a PPTX file. Component failures never abort the run; they come
// back as warnings. Fatal errors are limited to an unloadable dataset,
// an unusable template and a failed write.
func (g *Generator) Generate(tpl *template.Template, dataPath string, opts Options) (string, []Warning, error) {
	if len(tpl.Slides) == 0 {
		return "", nil, fmt.Errorf("template %q has no slides", tpl.Metadata.Name)
	}

	// 1. Validate the whole template up front. Problems are logged as an
	// aggregate here; the affected components degrade to warnings below
	// instead of aborting the run.
	if problems := template.Validate(tpl); len(problems) > 0 {
		g.logf("Template %q has %d validation problems", tpl.Metadata.Name, len(problems))
		for _, p := range problems {
			g.logf("  %v", p)
		}
	}

	// 2. Load the dataset
	mapper, err := datamap.NewMapper(dataPath, opts.Sheet)
	if err != nil {
		return "", nil, err
	}
	g.logf("Loaded dataset %s: %d rows", mapper.FileName(), mapper.RowCount())

	// 3. Build the variable set: title slide fields, then caller extras
	extra := map[string]string{}
	if t := tpl.Settings.TitleSlide; t.Title != "" || t.Subtitle != "" {
		extra["title"] = t.Title
		extra["subtitle"] = t.Subtitle
		extra["description"] = t.Description
	}
	for k, v := range opts.Variables {
		extra[k] = v
	}
	vars := mapper.Variables(extra)

	// 4. Create the document
	p := ppt.New()
	p.GetDocumentProperties().Title = vars.Expand(tpl.Metadata.Name)
	p.GetDocumentProperties().Creator = "ReportForge"

	env := &component.Env{
		Template:  tpl,
		Page:      component.PageFor(tpl.Settings.PageAspectRatio),
		Vars:      vars,
		AssetDirs: g.AssetDirs,
	}

	// 5. Optional automatic title slide on the document's first slide
	firstSlide := p.GetActiveSlide()
	slideFor := func(i int) *ppt.Slide {
		if i == 0 {
			return firstSlide
		}
		return p.CreateSlide()
	}
	if tpl.Settings.TitleSlide.Title != "" {
		g.renderTitleSlide(firstSlide, tpl, env)
		slideFor = func(int) *ppt.Slide { return p.CreateSlide() }
	}

	// 6. Render every slide, isolating component failures
	factory := component.NewFactory(tpl)
	var warnings []Warning
	for si, slideDef := range tpl.Slides {
		slide := slideFor(si)
		for ci, cfg := range slideDef.Components {
			comp, err := factory.Create(cfg)
			if err != nil {
				warnings = append(warnings, Warning{Slide: si, Component: ci, Kind: cfg.Type, Reason: err.Error()})
				g.logf("Skipping %v", &RenderError{Slide: si, Component: ci, Kind: cfg.Type, Err: err})
				continue
			}
			slice := mapper.SliceFor(comp.DataSource())
			if err := renderComponent(comp, slide, slice, env); err != nil {
				rerr := &RenderError{Slide: si, Component: ci, Kind: cfg.Type, Err: err}
				warnings = append(warnings, Warning{Slide: si, Component: ci, Kind: cfg.Type, Reason: err.Error()})
				g.logf("Component failed: %v", rerr)
			}
		}
	}

	// 7. Persist
	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = g.defaultOutputPath(tpl)
	}
	if err := writePresentation(p, outputPath); err != nil {
		return "", warnings, err
	}
	g.logf("Wrote presentation %s (%d warnings)", outputPath, len(warnings))
	return outputPath, warnings, nil
}

// renderComponent contains a single component render, converting panics
// from deep inside drawing code into ordinary errors.
func renderComponent(comp component.Component, slide *ppt.Slide, slice *datamap.Slice, env *component.Env) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render panicked: %v", r)
		}
	}()
	return comp.Render(slide, slice, env)
}

// renderTitleSlide draws the automatic opening slide from the template's
// title settings and color scheme.
func (g *Generator) renderTitleSlide(slide *ppt.Slide, tpl *template.Template, env *component.Env) {
	scheme := tpl.Settings.ColorScheme.WithDefaults()
	page := env.Page

	topBar := slide.CreateRichTextShape()
	topBar.SetWidth(component.EMU(page.WidthIn)).SetHeight(component.EMU(0.15))
	topBar.SetFill(ppt.NewFill().SetSolid(ppt.NewColor(argbOf(scheme.Primary))))

	titleShape := slide.CreateRichTextShape()
	titleShape.SetOffsetX(component.EMU(0.4)).SetOffsetY(component.EMU(page.HeightIn * 0.3))
	titleShape.SetWidth(component.EMU(page.WidthIn - 0.8)).SetHeight(component.EMU(1.0))
	tr := titleShape.CreateTextRun(env.Vars.Expand(tpl.Settings.TitleSlide.Title))
	tr.GetFont().SetSize(36).SetBold(true).SetColor(ppt.NewColor(argbOf(scheme.Primary)))
	centerParagraph(titleShape)

	if sub := tpl.Settings.TitleSlide.Subtitle; sub != "" {
		subShape := slide.CreateRichTextShape()
		subShape.SetOffsetX(component.EMU(0.4)).SetOffsetY(component.EMU(page.HeightIn * 0.5))
		subShape.SetWidth(component.EMU(page.WidthIn - 0.8)).SetHeight(component.EMU(0.6))
		str := subShape.CreateTextRun(env.Vars.Expand(sub))
		str.GetFont().SetSize(20).SetColor(ppt.NewColor(argbOf(scheme.Text)))
		centerParagraph(subShape)
	}

	tsShape := slide.CreateRichTextShape()
	tsShape.SetOffsetX(component.EMU(0.4)).SetOffsetY(component.EMU(page.HeightIn - 0.7))
	tsShape.SetWidth(component.EMU(page.WidthIn - 0.8)).SetHeight(component.EMU(0.4))
	tsTr := tsShape.CreateTextRun(time.Now().Format("January 2, 2006"))
	tsTr.GetFont().SetSize(12).SetColor(ppt.NewColor("FF94A3B8"))
	centerParagraph(tsShape)

	bottomBar := slide.CreateRichTextShape()
	bottomBar.SetOffsetX(0).SetOffsetY(component.EMU(page.HeightIn - 0.125))
	bottomBar.SetWidth(component.EMU(page.WidthIn)).SetHeight(component.EMU(0.125))
	bottomBar.SetFill(ppt.NewFill().SetSolid(ppt.NewColor(argbOf(scheme.Primary))))
}

func centerParagraph(shape *ppt.RichTextShape) {
	shape.GetActiveParagraph().SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
}

func argbOf(hex string) string {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return "FF1F2937"
	}
	return "FF" + hex
}

func (g *Generator) defaultOutputPath(tpl *template.Template) string {
	name := template.SanitizeName(tpl.Metadata.Name)
	if name == "" {
		name = "presentation"
	}
	file := fmt.Sprintf("%s_%s.pptx", name, time.Now().Format("20060102_150405"))
	if g.OutputDir == "" {
		return file
	}
	return filepath.Join(g.OutputDir, file)
}

func writePresentation(p *ppt.Presentation, path string) error {
	w, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return &PersistError{Path: path, Err: err}
	}
	var buf bytes.Buffer
	if err := w.(*ppt.PPTXWriter).WriteTo(&buf); err != nil {
		return &PersistError{Path: path, Err: err}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &PersistError{Path: path, Err: err}
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return &PersistError{Path: path, Err: err}
	}
	return nil
}

func (g *Generator) logf(format string, args ...interface{}) {
	if g.Log != nil {
		g.Log.Logf(format, args...)
	}
}
