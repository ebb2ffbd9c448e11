// Package route maps dashboard URL paths to view kinds.
//
// A Table holds an ordered list of Patterns. Matching is exact and
// segment-wise: no trailing-slash normalisation, no wildcards, and the
// query string is never part of the path. The first pattern that matches
// wins.
package route

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidPattern is returned by NewTable for a malformed template.
var ErrInvalidPattern = errors.New("invalid route pattern")

// ViewKind identifies which view a path resolves to.
type ViewKind int

const (
	Overview ViewKind = iota
	FilePicker
	Decoder
)

// Kinds lists every ViewKind, in declaration order.
func Kinds() []ViewKind {
	return []ViewKind{Overview, FilePicker, Decoder}
}

func (k ViewKind) String() string {
	switch k {
	case Overview:
		return "overview"
	case FilePicker:
		return "filepicker"
	case Decoder:
		return "decoder"
	default:
		return fmt.Sprintf("ViewKind(%d)", int(k))
	}
}

// Match is the result of resolving a path.
type Match struct {
	Kind      ViewKind
	Satellite string
}

// HasSatellite reports whether the match carries a satellite identifier.
func (m Match) HasSatellite() bool {
	return m.Satellite != ""
}

// Pattern pairs a URL template with the view it resolves to. A template
// segment written as {name} captures that path segment.
type Pattern struct {
	Template string
	Kind     ViewKind

	segments []string
	capture  int // index into segments, or -1
}

// Table is an ordered set of patterns. The zero value matches nothing.
type Table struct {
	patterns []Pattern
}

// NewTable compiles patterns in priority order.
func NewTable(patterns ...Pattern) (*Table, error) {
	t := &Table{patterns: make([]Pattern, 0, len(patterns))}
	for _, p := range patterns {
		compiled, err := compile(p)
		if err != nil {
			return nil, err
		}
		t.patterns = append(t.patterns, compiled)
	}
	return t, nil
}

// DefaultTable returns the dashboard's route table:
//
//	/                         overview
//	/{satellite}/filepicker   file picker
//	/{satellite}/decoder      decoder
func DefaultTable() *Table {
	t, err := NewTable(
		Pattern{Template: "/", Kind: Overview},
		Pattern{Template: "/{satellite}/filepicker", Kind: FilePicker},
		Pattern{Template: "/{satellite}/decoder", Kind: Decoder},
	)
	if err != nil {
		panic(err)
	}
	return t
}

// Patterns returns the compiled templates in priority order.
func (t *Table) Patterns() []Pattern {
	return append([]Pattern(nil), t.patterns...)
}

func compile(p Pattern) (Pattern, error) {
	if !strings.HasPrefix(p.Template, "/") {
		return Pattern{}, fmt.Errorf("%w: %q must start with /", ErrInvalidPattern, p.Template)
	}
	p.segments = splitPath(p.Template)
	p.capture = -1
	for i, seg := range p.segments {
		if !strings.HasPrefix(seg, "{") || !strings.HasSuffix(seg, "}") {
			continue
		}
		if len(seg) == 2 {
			return Pattern{}, fmt.Errorf("%w: %q has an unnamed capture", ErrInvalidPattern, p.Template)
		}
		if p.capture >= 0 {
			return Pattern{}, fmt.Errorf("%w: %q has more than one capture", ErrInvalidPattern, p.Template)
		}
		p.capture = i
	}
	return p, nil
}

// splitPath splits an absolute path into segments; "/" has none and a
// trailing slash yields a final empty segment.
func splitPath(path string) []string {
	if path == "/" {
		return nil
	}
	return strings.Split(path[1:], "/")
}

func (p Pattern) match(segments []string) (Match, bool) {
	if len(segments) != len(p.segments) {
		return Match{}, false
	}
	m := Match{Kind: p.Kind}
	for i, seg := range p.segments {
		if i == p.capture {
			if segments[i] == "" {
				return Match{}, false
			}
			m.Satellite = segments[i]
			continue
		}
		if segments[i] != seg {
			return Match{}, false
		}
	}
	return m, true
}

// Match resolves path against the table. It reports false when no pattern
// matches the whole path, including when a capture segment is empty.
func (t *Table) Match(path string) (Match, bool) {
	if !strings.HasPrefix(path, "/") {
		return Match{}, false
	}
	segments := splitPath(path)
	for _, p := range t.patterns {
		if m, ok := p.match(segments); ok {
			return m, true
		}
	}
	return Match{}, false
}

// Path builds the URL for a kind and satellite, escaping the satellite as
// one path segment. For plain ids it is the inverse of Match on the
// default table.
func Path(kind ViewKind, satellite string) string {
	switch kind {
	case FilePicker, Decoder:
		return "/" + url.PathEscape(satellite) + "/" + kind.String()
	default:
		return "/"
	}
}
