// Package content loads content records: source files with an optional
// YAML front matter block followed by a markup body.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Bitlatte/quill/internal/model"
)

// ErrMalformedMetadata marks a record whose front matter block is present
// but does not parse. Callers skip the record and continue the batch.
var ErrMalformedMetadata = errors.New("malformed metadata")

// dateFormats are tried in order when parsing the date front matter key.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var titleCaser = cases.Title(language.English)

// Load reads the content file at path and returns the parsed page. rel is
// the path relative to the content root; it determines the page's
// section, permalink, and fallback title.
//
// A file without a front matter block is treated as body-only. A file
// whose front matter block does not parse fails with ErrMalformedMetadata.
func Load(path, rel string) (*model.Page, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(raw, path, rel)
}

// Parse builds a page from raw file bytes. Split out from Load so tests
// can exercise parsing without touching the filesystem.
func Parse(raw []byte, path, rel string) (*model.Page, error) {
	meta := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(raw), &meta)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", rel, ErrMalformedMetadata, err)
	}

	p := &model.Page{
		SourcePath: path,
		Section:    sectionOf(rel),
		Permalink:  permalinkOf(rel),
		Body:       body,
		Params:     meta,
	}

	p.Title = stringKey(meta, "title")
	if p.Title == "" {
		p.Title = titleFromFilename(rel)
	}
	if s := stringKey(meta, "summary"); s != "" {
		p.Summary = s
	} else {
		p.Summary = stringKey(meta, "excerpt")
	}
	p.Layout = stringKey(meta, "layout")
	if s := stringKey(meta, "section"); s != "" {
		p.Section = s
	} else if s := stringKey(meta, "type"); s != "" {
		p.Section = s
	}
	if d, ok := meta["draft"].(bool); ok {
		p.Draft = d
	}

	// The YAML codec resolves date-like scalars to time.Time on its own;
	// quoted dates arrive as strings.
	switch d := meta["date"].(type) {
	case time.Time:
		p.Date = d
	case string:
		if s := strings.TrimSpace(d); s != "" {
			t, err := parseDate(s)
			if err != nil {
				return nil, fmt.Errorf("%s: %w: %v", rel, ErrMalformedMetadata, err)
			}
			p.Date = t
		}
	}

	return p, nil
}

func parseDate(s string) (time.Time, error) {
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func stringKey(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

// sectionOf derives the section from the first directory of the relative
// path. Files at the content root have no section.
func sectionOf(rel string) string {
	dir := filepath.Dir(rel)
	if dir == "." || dir == "" {
		return ""
	}
	parts := strings.Split(dir, string(filepath.Separator))
	return parts[0]
}

// permalinkOf maps content/foo/bar.md to /foo/bar/.
func permalinkOf(rel string) string {
	link := strings.TrimSuffix(rel, filepath.Ext(rel))
	link = filepath.ToSlash(link)
	return "/" + strings.Trim(link, "/") + "/"
}

// titleFromFilename turns "my-first-post.md" into "My First Post".
func titleFromFilename(rel string) string {
	base := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	base = strings.ReplaceAll(base, "-", " ")
	base = strings.ReplaceAll(base, "_", " ")
	return titleCaser.String(base)
}
