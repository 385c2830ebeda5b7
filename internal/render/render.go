// Package render loads layout templates and renders pages against them.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/Bitlatte/quill/internal/model"
)

// ErrMissingTemplate marks a page whose declared layout does not resolve
// to a known template. Callers skip the page and continue the batch.
var ErrMissingTemplate = errors.New("missing template")

// Context is the data every layout executes against. Page is nil for the
// homepage and section list pages; Section and Pages are only set there.
// Using one shape for both keeps partials reusable across all layouts.
type Context struct {
	Site    *model.Site
	Page    *model.Page
	Section string
	Pages   []*model.Page
}

// LayoutSet holds all parsed layouts of a site, addressed by file name
// (e.g. "single.html", "partials/nav.html" is addressed as "nav.html").
type LayoutSet struct {
	tmpl *template.Template
}

// Load parses every .html file under dir. base.html and partials are
// parsed first so page layouts may redefine blocks they declare; home.html
// is parsed last for the same reason.
func Load(dir string, funcs template.FuncMap) (*LayoutSet, error) {
	var base, home string
	var partials, others []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			return nil
		}
		switch {
		case d.Name() == "base.html" && filepath.Dir(path) == filepath.Clean(dir):
			base = path
		case strings.HasPrefix(filepath.Dir(path), filepath.Join(dir, "partials")):
			partials = append(partials, path)
		case d.Name() == "home.html" && filepath.Dir(path) == filepath.Clean(dir):
			home = path
		default:
			others = append(others, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan layouts in %s: %w", dir, err)
	}

	root := template.New("").Funcs(funcs)

	var ordered []string
	if base != "" {
		ordered = append(ordered, base)
	}
	ordered = append(ordered, partials...)
	ordered = append(ordered, others...)
	if home != "" {
		ordered = append(ordered, home)
	}

	if len(ordered) > 0 {
		if root, err = root.ParseFiles(ordered...); err != nil {
			return nil, fmt.Errorf("parse layouts: %w", err)
		}
	}

	return &LayoutSet{tmpl: root}, nil
}

// Has reports whether a layout with the given name was loaded.
func (ls *LayoutSet) Has(name string) bool {
	return ls.tmpl.Lookup(name) != nil
}

// Resolve picks the layout for a page: the explicit front matter layout
// wins and must exist; otherwise single-<section>.html, then single.html.
func (ls *LayoutSet) Resolve(p *model.Page) (string, error) {
	if p.Layout != "" {
		name := ensureExt(p.Layout)
		if !ls.Has(name) {
			return "", fmt.Errorf("%s declares layout %q: %w", p.SourcePath, p.Layout, ErrMissingTemplate)
		}
		return name, nil
	}
	if p.Section != "" {
		if name := "single-" + p.Section + ".html"; ls.Has(name) {
			return name, nil
		}
	}
	if ls.Has("single.html") {
		return "single.html", nil
	}
	return "", fmt.Errorf("%s: no single.html fallback layout: %w", p.SourcePath, ErrMissingTemplate)
}

// Render executes the named layout into a buffer and returns the bytes.
// Rendering to a buffer first guarantees a failed execution never leaves
// a partial output file behind.
func (ls *LayoutSet) Render(name string, data any) ([]byte, error) {
	if !ls.Has(name) {
		return nil, fmt.Errorf("layout %q: %w", name, ErrMissingTemplate)
	}
	var buf bytes.Buffer
	if err := ls.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("execute layout %q: %w", name, err)
	}
	return buf.Bytes(), nil
}

func ensureExt(name string) string {
	if filepath.Ext(name) == "" {
		return name + ".html"
	}
	return name
}
