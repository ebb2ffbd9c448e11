package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
)

func TestAssertStatusCode(t *testing.T) {
	fakeT := &testing.T{}
	AssertStatusCode(fakeT, http.StatusOK, http.StatusOK)
	if fakeT.Failed() {
		t.Error("expected no failure for matching status codes")
	}
}

func TestNewTestRequest(t *testing.T) {
	req := NewTestRequest(http.MethodGet, "/meteor/decoder")
	if req.Method != http.MethodGet {
		t.Errorf("method = %s, want GET", req.Method)
	}
	if req.URL.Path != "/meteor/decoder" {
		t.Errorf("path = %s, want /meteor/decoder", req.URL.Path)
	}
}

func TestNewFormRequest(t *testing.T) {
	req := NewFormRequest("/api/dispatch", url.Values{"type": {"clear_file"}, "satellite": {"meteor"}})

	if req.Method != http.MethodPost {
		t.Errorf("method = %s, want POST", req.Method)
	}
	if err := req.ParseForm(); err != nil {
		t.Fatalf("ParseForm: %v", err)
	}
	if got := req.PostFormValue("satellite"); got != "meteor" {
		t.Errorf("satellite = %q, want meteor", got)
	}
}

func TestNewJSONRequest(t *testing.T) {
	req := NewJSONRequest(t, "/api/dispatch", map[string]string{"type": "clear_file"})

	if ct := req.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	body, _ := io.ReadAll(req.Body)
	if string(body) != `{"type":"clear_file"}` {
		t.Errorf("body = %s", body)
	}
}

func TestDecodeJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	rec.WriteString(`{"status":"ok"}`)

	var got map[string]string
	DecodeJSON(t, rec, &got)
	if got["status"] != "ok" {
		t.Errorf("status = %q, want ok", got["status"])
	}
}

func TestDataDir(t *testing.T) {
	dir := DataDir(t, 16, "pass1.raw", "nested/pass2.raw")

	if !filepath.IsAbs(dir) {
		t.Errorf("dir %q is not absolute", dir)
	}
	info, err := os.Stat(filepath.Join(dir, "nested", "pass2.raw"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() != 16 {
		t.Errorf("size = %d, want 16", info.Size())
	}
}
