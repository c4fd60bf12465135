package component

import (
	ppt "github.com/VantageDataChat/GoPPT"

	"reportforge/template"
)

// renderPlaceholder draws a muted box with a message where a component
// could not produce real content. Components degrade to this instead of
// failing the slide.
func renderPlaceholder(slide *ppt.Slide, pos template.Position, size template.Size, message string) {
	shape := slide.CreateRichTextShape()
	place(shape, pos, size)
	shape.SetFill(solidFill("FFF3F4F6"))

	tr := shape.CreateTextRun(message)
	tr.GetFont().SetSize(11).SetColor(ppt.NewColor("FF9CA3AF"))
	alignCenter(shape.GetActiveParagraph())
}
