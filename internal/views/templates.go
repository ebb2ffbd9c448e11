package views

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/banshee-data/groundstation/internal/route"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateProvider abstracts template loading and execution.
// Production uses EmbeddedTemplateProvider; tests use MockTemplateProvider.
type TemplateProvider interface {
	// ExecuteTemplate executes a template with the given data.
	ExecuteTemplate(w io.Writer, name string, data interface{}) error
}

// funcs are available to every view template.
var funcs = template.FuncMap{
	"filepickerPath": func(satellite string) string { return route.Path(route.FilePicker, satellite) },
	"decoderPath":    func(satellite string) string { return route.Path(route.Decoder, satellite) },
	"bytes":          func(n int64) string { return humanize.Bytes(uint64(n)) },
	"ago":            func(t time.Time) string { return humanize.Time(t) },
}

// EmbeddedTemplateProvider loads templates from an embedded filesystem
// and caches them after the first parse.
type EmbeddedTemplateProvider struct {
	fs      fs.FS
	baseDir string

	mu    sync.Mutex
	cache map[string]*template.Template
}

// NewEmbeddedTemplateProvider returns a provider over the view templates
// compiled into the binary.
func NewEmbeddedTemplateProvider() *EmbeddedTemplateProvider {
	return &EmbeddedTemplateProvider{
		fs:      templateFS,
		baseDir: "templates",
		cache:   make(map[string]*template.Template),
	}
}

// GetTemplate parses and caches a template.
func (p *EmbeddedTemplateProvider) GetTemplate(name string) (*template.Template, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if t, ok := p.cache[name]; ok {
		return t, nil
	}

	content, err := fs.ReadFile(p.fs, p.baseDir+"/"+name)
	if err != nil {
		return nil, err
	}

	t, err := template.New(name).Funcs(funcs).Parse(string(content))
	if err != nil {
		return nil, err
	}

	p.cache[name] = t
	return t, nil
}

// ExecuteTemplate loads and executes a template.
func (p *EmbeddedTemplateProvider) ExecuteTemplate(w io.Writer, name string, data interface{}) error {
	t, err := p.GetTemplate(name)
	if err != nil {
		return err
	}
	return t.Execute(w, data)
}

// MockTemplateProvider provides templates for testing and records every
// execution.
type MockTemplateProvider struct {
	Templates    map[string]string
	ExecuteError error

	mu           sync.Mutex
	ExecuteCalls []ExecuteCall
}

// ExecuteCall is one recorded MockTemplateProvider execution.
type ExecuteCall struct {
	Name string
	Data interface{}
}

// NewMockTemplateProvider creates a mock provider with predefined templates.
func NewMockTemplateProvider(templates map[string]string) *MockTemplateProvider {
	return &MockTemplateProvider{Templates: templates}
}

// ExecuteTemplate records the call and executes the template.
func (m *MockTemplateProvider) ExecuteTemplate(w io.Writer, name string, data interface{}) error {
	m.mu.Lock()
	m.ExecuteCalls = append(m.ExecuteCalls, ExecuteCall{Name: name, Data: data})
	m.mu.Unlock()

	if m.ExecuteError != nil {
		return m.ExecuteError
	}

	content, ok := m.Templates[name]
	if !ok {
		return fs.ErrNotExist
	}
	t, err := template.New(name).Funcs(funcs).Parse(content)
	if err != nil {
		return err
	}
	return t.Execute(w, data)
}

// Calls returns a copy of the recorded executions.
func (m *MockTemplateProvider) Calls() []ExecuteCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ExecuteCall(nil), m.ExecuteCalls...)
}
