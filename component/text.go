package component

import (
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"

	"reportforge/datamap"
	"reportforge/template"
)

// textComponent renders static text with {variable} substitution.
type textComponent struct {
	cfg template.ComponentConfig
}

func (c *textComponent) Kind() string { return template.TypeText }

func (c *textComponent) DataSource() template.DataSource { return c.cfg.Data }

func (c *textComponent) Render(slide *ppt.Slide, slice *datamap.Slice, env *Env) error {
	vars := env.Vars
	if len(c.cfg.Variables) > 0 {
		merged := datamap.Variables{}
		for k, v := range vars {
			merged[k] = v
		}
		for k, v := range c.cfg.Variables {
			merged[k] = vars.Expand(v)
		}
		vars = merged
	}
	content := vars.Expand(c.cfg.Content)

	shape := slide.CreateRichTextShape()
	place(shape, c.cfg.Position, c.cfg.Size)

	size := fontSizeOr(c.cfg.Style, env, 12)
	color := textColorOr(c.cfg.Style.Color, env)

	for i, line := range strings.Split(content, "\n") {
		if i > 0 {
			shape.CreateParagraph()
		}
		tr := shape.CreateTextRun(line)
		font := tr.GetFont().SetSize(size).SetColor(ppt.NewColor(color))
		if c.cfg.Style.Bold {
			font.SetBold(true)
		}
		applyAlignment(shape.GetActiveParagraph(), c.cfg.Style.Alignment)
	}
	return nil
}
