package generate

import "fmt"

// RenderError reports one component that failed to render. Generation
// continues past it; the error surfaces as a warning.
type RenderError struct {
	Slide     int
	Component int
	Kind      string
	Err       error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("slide %d, component %d (%s): %v", e.Slide, e.Component, e.Kind, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// PersistError reports a presentation that rendered but could not be
// written to disk.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to write presentation %s: %v", e.Path, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
