package template

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Manager loads, saves and edits template files in a directory.
type Manager struct {
	dir string
}

// NewManager creates a Manager rooted at the given template directory.
func NewManager(dir string) *Manager {
	return &Manager{dir: dir}
}

// Dir returns the template directory.
func (m *Manager) Dir() string {
	return m.dir
}

// legacyTemplate is the flat file shape written by early exports:
// identity fields at the top level, no metadata/settings wrapper.
type legacyTemplate struct {
	TemplateID  string    `json:"template_id"`
	Name        string    `json:"name"`
	Client      string    `json:"client"`
	Description string    `json:"description"`
	Version     string    `json:"version"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
	Settings    *Settings `json:"settings"`
	Slides      []Slide   `json:"slides"`
}

// Load reads a template file, accepting both the canonical wrapped shape
// and the legacy flat shape. The returned template is always canonical.
func (m *Manager) Load(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}
	return Parse(data)
}

// LoadByName loads <dir>/<name>.json.
func (m *Manager) LoadByName(name string) (*Template, error) {
	return m.Load(filepath.Join(m.dir, name+".json"))
}

// Parse decodes template JSON, normalizing the legacy flat shape.
func Parse(data []byte) (*Template, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse template JSON: %w", err)
	}

	if _, wrapped := probe["metadata"]; wrapped {
		var t Template
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("failed to parse template JSON: %w", err)
		}
		return &t, nil
	}

	// Legacy flat shape: lift identity fields into metadata.
	var legacy legacyTemplate
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("failed to parse legacy template JSON: %w", err)
	}
	t := &Template{
		Metadata: Metadata{
			ID:          legacy.TemplateID,
			Name:        legacy.Name,
			Description: legacy.Description,
			Version:     legacy.Version,
			Industry:    legacy.Client,
			CreatedAt:   legacy.CreatedAt,
			ModifiedAt:  legacy.UpdatedAt,
		},
		Slides: legacy.Slides,
	}
	if legacy.Settings != nil {
		t.Settings = *legacy.Settings
	}
	return t, nil
}

// Save writes the template in the canonical wrapped shape, stamping
// modified_at (and created_at on first save).
func (m *Manager) Save(t *Template, path string) error {
	now := time.Now().Format(time.RFC3339)
	if t.Metadata.CreatedAt == "" {
		t.Metadata.CreatedAt = now
	}
	t.Metadata.ModifiedAt = now
	if t.Metadata.Version == "" {
		t.Metadata.Version = "1.0"
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize template: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create template directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write template file: %w", err)
	}
	return nil
}

// SaveByName saves to <dir>/<name>.json using the sanitized template name.
func (m *Manager) SaveByName(t *Template) (string, error) {
	name := SanitizeName(t.Metadata.Name)
	if name == "" {
		return "", fmt.Errorf("template has no name")
	}
	path := filepath.Join(m.dir, name+".json")
	if err := m.Save(t, path); err != nil {
		return "", err
	}
	return path, nil
}

// Create returns an empty canonical template with a fresh ID.
func (m *Manager) Create(name, description string) *Template {
	return &Template{
		Metadata: Metadata{
			ID:          uuid.New().String(),
			Name:        name,
			Description: description,
			Version:     "1.0",
			CreatedAt:   time.Now().Format(time.RFC3339),
		},
		Settings: Settings{
			PageAspectRatio: "16:9",
			DefaultFont:     "Calibri",
			DefaultFontSize: 12,
		},
		Slides: []Slide{},
	}
}

// AddSlide appends a slide to the template.
func (m *Manager) AddSlide(t *Template, s Slide) {
	t.Slides = append(t.Slides, s)
}

// MoveSlide moves the slide at index from to index to, shifting the rest.
func (m *Manager) MoveSlide(t *Template, from, to int) error {
	n := len(t.Slides)
	if from < 0 || from >= n {
		return fmt.Errorf("slide index %d out of range (0..%d)", from, n-1)
	}
	if to < 0 || to >= n {
		return fmt.Errorf("target index %d out of range (0..%d)", to, n-1)
	}
	s := t.Slides[from]
	t.Slides = append(t.Slides[:from], t.Slides[from+1:]...)
	rest := append([]Slide{}, t.Slides[to:]...)
	t.Slides = append(t.Slides[:to], s)
	t.Slides = append(t.Slides, rest...)
	return nil
}

// Summary is one row of a template listing.
type Summary struct {
	File        string `json:"file"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
	SlideCount  int    `json:"slide_count"`
}

// List scans the template directory and summarizes every parseable
// template file. Unparseable files are skipped.
func (m *Manager) List() ([]Summary, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read template directory: %w", err)
	}

	var out []Summary
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		t, err := m.Load(filepath.Join(m.dir, e.Name()))
		if err != nil {
			continue
		}
		out = append(out, Summary{
			File:        e.Name(),
			Name:        t.Metadata.Name,
			Description: t.Metadata.Description,
			Version:     t.Metadata.Version,
			SlideCount:  len(t.Slides),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes <dir>/<name>.json.
func (m *Manager) Delete(name string) error {
	path := filepath.Join(m.dir, SanitizeName(name)+".json")
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}

// Info summarizes a loaded template.
type Info struct {
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Version        string         `json:"version"`
	SlideCount     int            `json:"slide_count"`
	ComponentCount int            `json:"component_count"`
	ComponentsBy   map[string]int `json:"components_by_type"`
}

// Describe returns summary counts for a template.
func Describe(t *Template) Info {
	info := Info{
		Name:         t.Metadata.Name,
		Description:  t.Metadata.Description,
		Version:      t.Metadata.Version,
		SlideCount:   len(t.Slides),
		ComponentsBy: map[string]int{},
	}
	for _, s := range t.Slides {
		for _, c := range s.Components {
			info.ComponentCount++
			info.ComponentsBy[c.Type]++
		}
	}
	return info
}

// SanitizeName converts a display name into a safe file stem.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	return b.String()
}
