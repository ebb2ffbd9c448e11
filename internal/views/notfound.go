package views

import "io"

// NotFound is the fallback for paths no route matches.
type NotFound struct {
	templates TemplateProvider
}

// NewNotFound returns the fallback view.
func NewNotFound(tp TemplateProvider) *NotFound {
	return &NotFound{templates: tp}
}

func (*NotFound) Name() string { return "notfound" }

// Render echoes the unmatched path with a link home.
func (v *NotFound) Render(w io.Writer, p Props) error {
	return v.templates.ExecuteTemplate(w, "notfound.html", struct{ Path string }{p.Path})
}
