package views

import (
	"bytes"
	"errors"
	"io/fs"
	"testing"
)

func TestMockTemplateProvider_ExecuteTemplate(t *testing.T) {
	provider := NewMockTemplateProvider(map[string]string{
		"page.html": "Welcome {{.Name}}!",
	})

	var buf bytes.Buffer
	err := provider.ExecuteTemplate(&buf, "page.html", map[string]string{"Name": "User"})
	if err != nil {
		t.Fatalf("ExecuteTemplate failed: %v", err)
	}

	expected := "Welcome User!"
	if buf.String() != expected {
		t.Errorf("got %q, want %q", buf.String(), expected)
	}

	calls := provider.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}
	if calls[0].Name != "page.html" {
		t.Errorf("expected name 'page.html', got %q", calls[0].Name)
	}
}

func TestMockTemplateProvider_ExecuteTemplate_NotFound(t *testing.T) {
	provider := NewMockTemplateProvider(map[string]string{})

	err := provider.ExecuteTemplate(&bytes.Buffer{}, "missing.html", nil)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestMockTemplateProvider_ExecuteTemplate_Error(t *testing.T) {
	provider := NewMockTemplateProvider(map[string]string{
		"page.html": "content",
	})
	provider.ExecuteError = fs.ErrPermission

	err := provider.ExecuteTemplate(&bytes.Buffer{}, "page.html", nil)
	if err != fs.ErrPermission {
		t.Errorf("expected fs.ErrPermission, got %v", err)
	}
	if len(provider.Calls()) != 1 {
		t.Error("failed executions should still be recorded")
	}
}

func TestMockTemplateProvider_Funcs(t *testing.T) {
	provider := NewMockTemplateProvider(map[string]string{
		"links.html": `{{filepickerPath .}} {{decoderPath .}}`,
	})

	var buf bytes.Buffer
	if err := provider.ExecuteTemplate(&buf, "links.html", "meteor"); err != nil {
		t.Fatalf("ExecuteTemplate failed: %v", err)
	}
	if got, want := buf.String(), "/meteor/filepicker /meteor/decoder"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEmbeddedTemplateProvider_AllViewTemplatesParse(t *testing.T) {
	provider := NewEmbeddedTemplateProvider()

	for _, name := range []string{"overview.html", "filepicker.html", "decoder.html", "notfound.html"} {
		if _, err := provider.GetTemplate(name); err != nil {
			t.Errorf("GetTemplate(%q) failed: %v", name, err)
		}
	}
}

func TestEmbeddedTemplateProvider_Caches(t *testing.T) {
	provider := NewEmbeddedTemplateProvider()

	first, err := provider.GetTemplate("notfound.html")
	if err != nil {
		t.Fatalf("GetTemplate failed: %v", err)
	}
	second, err := provider.GetTemplate("notfound.html")
	if err != nil {
		t.Fatalf("GetTemplate failed: %v", err)
	}
	if first != second {
		t.Error("expected cached template on second lookup")
	}
}

func TestEmbeddedTemplateProvider_Missing(t *testing.T) {
	provider := NewEmbeddedTemplateProvider()

	if _, err := provider.GetTemplate("nope.html"); err == nil {
		t.Error("expected error for missing template")
	}
}
