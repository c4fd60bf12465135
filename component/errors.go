package component

import (
	"fmt"
	"strings"
)

// ConfigError reports a component config rejected at construction. It
// aggregates every problem found so template authors see all of them at
// once.
type ConfigError struct {
	Kind     string
	Problems []error
}

func (e *ConfigError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Error()
	}
	return fmt.Sprintf("invalid %s component: %s", e.Kind, strings.Join(msgs, "; "))
}

// Unwrap exposes the individual problems to errors.Is / errors.As.
func (e *ConfigError) Unwrap() []error {
	return e.Problems
}
