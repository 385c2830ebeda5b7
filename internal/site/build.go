// Package site implements the build pipeline: discover content records,
// render each against its layout, and emit the output tree.
package site

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Bitlatte/quill/internal/config"
	"github.com/Bitlatte/quill/internal/content"
	"github.com/Bitlatte/quill/internal/markdown"
	"github.com/Bitlatte/quill/internal/model"
	"github.com/Bitlatte/quill/internal/render"
)

// Conventional directory layout inside a site root.
const (
	contentDir = "content"
	layoutsDir = "layouts"
	staticDir  = "static"
	dataDir    = "data"
)

// Builder renders one site from its root directory into the output
// directory. Pages are independent of each other, so a Builder may render
// them in any order or in parallel.
type Builder struct {
	root string
	cfg  config.Config
	log  *zap.Logger
	md   *markdown.Renderer
}

// New returns a Builder for the site at root.
func New(root string, cfg config.Config, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Builder{
		root: root,
		cfg:  cfg,
		log:  log,
		md:   markdown.New(cfg.Sanitize),
	}
}

// OutputDir resolves the configured output directory against the site root.
func (b *Builder) OutputDir() string {
	if filepath.IsAbs(b.cfg.OutputDir) {
		return b.cfg.OutputDir
	}
	return filepath.Join(b.root, b.cfg.OutputDir)
}

// Summary reports what a build produced.
type Summary struct {
	Rendered int // pages written
	Skipped  int // records skipped over malformed metadata or missing layouts
	Static   int // static files copied
}

// Build runs the full pipeline. Per-record failures (malformed metadata,
// missing layout) are logged, counted in the summary, and never abort the
// batch; filesystem failures do.
func (b *Builder) Build() (Summary, error) {
	var sum Summary

	contentRoot := filepath.Join(b.root, contentDir)
	layoutRoot := filepath.Join(b.root, layoutsDir)
	if !dirExists(contentRoot) {
		return sum, fmt.Errorf("content directory %s not found", contentRoot)
	}
	if !dirExists(layoutRoot) {
		return sum, fmt.Errorf("layouts directory %s not found", layoutRoot)
	}

	out := b.OutputDir()
	if err := os.RemoveAll(out); err != nil {
		return sum, fmt.Errorf("clean output directory: %w", err)
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return sum, fmt.Errorf("create output directory: %w", err)
	}

	if static := filepath.Join(b.root, staticDir); dirExists(static) {
		n, err := copyDir(static, out)
		if err != nil {
			return sum, fmt.Errorf("copy static assets: %w", err)
		}
		sum.Static = n
	}

	layouts, err := render.Load(layoutRoot, b.funcMap())
	if err != nil {
		return sum, err
	}

	data, err := loadData(filepath.Join(b.root, dataDir))
	if err != nil {
		return sum, err
	}

	pages, skipped, err := b.loadPages(contentRoot)
	if err != nil {
		return sum, err
	}
	sum.Skipped += skipped

	model.SortByDate(pages)
	sections := map[string][]*model.Page{}
	for _, p := range pages {
		if p.Section != "" {
			sections[p.Section] = append(sections[p.Section], p)
		}
	}

	s := &model.Site{
		Title:       b.cfg.Title,
		BaseURL:     b.cfg.BaseURL,
		Description: b.cfg.Description,
		Author:      b.cfg.Author,
		Pages:       pages,
		Sections:    sections,
		Menus:       b.cfg.Menus,
		Data:        data,
	}

	// Convert every body before any layout executes: layouts are free to
	// range over .Site.Pages, so pages must be read-only by then.
	cg := new(errgroup.Group)
	cg.SetLimit(b.cfg.Workers)
	for _, p := range pages {
		p := p
		cg.Go(func() error { return b.convertBody(p) })
	}
	if err := cg.Wait(); err != nil {
		return sum, err
	}

	var rendered, skippedLayout atomic.Int64
	g := new(errgroup.Group)
	g.SetLimit(b.cfg.Workers)
	for _, p := range pages {
		p := p
		g.Go(func() error {
			if err := b.renderPage(layouts, s, p, out); err != nil {
				if errors.Is(err, render.ErrMissingTemplate) {
					b.log.Warn("skipping page", zap.String("source", p.SourcePath), zap.Error(err))
					skippedLayout.Add(1)
					return nil
				}
				return err
			}
			rendered.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return sum, err
	}
	sum.Rendered = int(rendered.Load())
	sum.Skipped += int(skippedLayout.Load())

	n, err := b.writeListPages(layouts, s, out)
	if err != nil {
		return sum, err
	}
	sum.Rendered += n

	if b.cfg.BaseURL != "" {
		if err := b.writeFeeds(s, out); err != nil {
			return sum, err
		}
	} else {
		b.log.Debug("no baseURL configured, skipping feed.xml and sitemap.xml")
	}

	return sum, nil
}

// convertBody fills in p.Content from the raw body. HTML records pass
// through untouched apart from sanitization; everything else is Markdown.
func (b *Builder) convertBody(p *model.Page) error {
	if strings.EqualFold(filepath.Ext(p.SourcePath), ".html") {
		p.Content = template.HTML(b.md.Sanitize(p.Body))
		return nil
	}
	html, err := b.md.Render(p.Body)
	if err != nil {
		return fmt.Errorf("render body of %s: %w", p.SourcePath, err)
	}
	p.Content = html
	return nil
}

// renderPage resolves the page's layout and writes the result. The page
// is rendered fully into memory before anything touches the output
// directory, so a failed render never leaves a partial file.
func (b *Builder) renderPage(layouts *render.LayoutSet, s *model.Site, p *model.Page, out string) error {
	name, err := layouts.Resolve(p)
	if err != nil {
		return err
	}
	doc, err := layouts.Render(name, render.Context{Site: s, Page: p})
	if err != nil {
		return err
	}

	target := filepath.Join(out, filepath.FromSlash(p.Permalink), "index.html")
	b.log.Debug("rendered page",
		zap.String("source", p.SourcePath),
		zap.String("layout", name),
		zap.String("target", target))
	return writeFile(target, doc)
}

// writeListPages emits the homepage and one list page per section that
// has a list-<section>.html layout. Sections iterate in sorted order so
// repeated builds touch files in the same sequence.
func (b *Builder) writeListPages(layouts *render.LayoutSet, s *model.Site, out string) (int, error) {
	n := 0
	if layouts.Has("home.html") {
		doc, err := layouts.Render("home.html", render.Context{Site: s, Pages: s.Pages})
		if err != nil {
			return n, err
		}
		if err := writeFile(filepath.Join(out, "index.html"), doc); err != nil {
			return n, err
		}
		n++
	} else {
		b.log.Debug("no home.html layout, skipping homepage")
	}

	names := make([]string, 0, len(s.Sections))
	for section := range s.Sections {
		names = append(names, section)
	}
	sort.Strings(names)
	for _, section := range names {
		layout := "list-" + section + ".html"
		if !layouts.Has(layout) {
			continue
		}
		doc, err := layouts.Render(layout, render.Context{
			Site:    s,
			Section: section,
			Pages:   s.Sections[section],
		})
		if err != nil {
			return n, err
		}
		if err := writeFile(filepath.Join(out, section, "index.html"), doc); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// loadPages walks the content tree and parses every record. Records with
// malformed metadata are skipped and counted; drafts are dropped; read
// errors abort the walk.
func (b *Builder) loadPages(contentRoot string) ([]*model.Page, int, error) {
	var pages []*model.Page
	skipped := 0

	err := filepath.WalkDir(contentRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", path, err)
		}
		if d.IsDir() || !isContentFile(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(contentRoot, path)
		if err != nil {
			return err
		}
		p, err := content.Load(path, rel)
		if err != nil {
			if errors.Is(err, content.ErrMalformedMetadata) {
				b.log.Warn("skipping record", zap.String("source", path), zap.Error(err))
				skipped++
				return nil
			}
			return err
		}
		if p.Draft {
			b.log.Debug("skipping draft", zap.String("source", path))
			return nil
		}
		pages = append(pages, p)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return pages, skipped, nil
}

func isContentFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown", ".html":
		return true
	}
	return false
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
