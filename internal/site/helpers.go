package site

import (
	"html/template"
	"strings"
	"time"
)

// Slugify converts a title to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// AbsURL joins the site base URL with a path. With an empty base the
// path is returned unchanged, keeping sites relocatable by default.
func AbsURL(base, path string) string {
	if base == "" {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

func (b *Builder) funcMap() template.FuncMap {
	return template.FuncMap{
		"slugify": Slugify,
		"absURL": func(path string) string {
			return AbsURL(b.cfg.BaseURL, path)
		},
		"dateFormat": func(layout string, t time.Time) string {
			return t.Format(layout)
		},
	}
}
