package component

import (
	"os"

	ppt "github.com/VantageDataChat/GoPPT"

	"reportforge/datamap"
	"reportforge/template"
)

// imageComponent embeds an image file, with logo references resolved
// through the template settings. A missing file degrades to a
// placeholder box.
type imageComponent struct {
	cfg template.ComponentConfig
}

func (c *imageComponent) Kind() string { return template.TypeImage }

func (c *imageComponent) DataSource() template.DataSource { return c.cfg.Data }

func (c *imageComponent) Render(slide *ppt.Slide, slice *datamap.Slice, env *Env) error {
	path := c.cfg.Data.Path
	if c.cfg.Data.Kind == "logo" && env.Template != nil {
		// An explicit path on a logo component overrides the template.
		if path == "" {
			path = env.Template.Settings.LogoPath
		}
		if path == "" {
			path = env.Template.Settings.EmbeddedLogoPath
		}
	}

	resolved := ResolveAssetPath(path, env.AssetDirs)
	if resolved == "" {
		renderPlaceholder(slide, c.cfg.Position, c.cfg.Size, "Image not found")
		return nil
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		renderPlaceholder(slide, c.cfg.Position, c.cfg.Size, "Image not found")
		return nil
	}

	shape := slide.CreateDrawingShape()
	shape.SetImageData(data, imageMIME(resolved))
	shape.SetOffsetX(EMU(c.cfg.Position.X)).SetOffsetY(EMU(c.cfg.Position.Y))
	shape.SetWidth(EMU(c.cfg.Size.Width)).SetHeight(EMU(c.cfg.Size.Height))
	return nil
}
