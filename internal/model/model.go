package model

import (
	"html/template"
	"sort"
	"time"
)

// Page represents a single piece of content (blog post, resume page, etc.).
type Page struct {
	Title      string
	Summary    string
	Date       time.Time
	Section    string
	Layout     string
	SourcePath string
	Permalink  string
	Draft      bool

	// Body is the raw markup as read from the source file. Content is the
	// rendered HTML; it is empty until the build pipeline fills it in.
	Body    []byte
	Content template.HTML

	// Params holds the full front matter map, including keys the
	// well-known fields above were extracted from.
	Params map[string]any
}

// MenuItem is one entry of a named navigation menu. Menus come from site
// configuration and may nest through Children.
type MenuItem struct {
	Name     string     `mapstructure:"name" yaml:"name"`
	URL      string     `mapstructure:"url" yaml:"url"`
	Weight   int        `mapstructure:"weight" yaml:"weight"`
	Children []MenuItem `mapstructure:"children" yaml:"children,omitempty"`
}

// Site holds all site-wide data passed to layouts.
type Site struct {
	Title       string
	BaseURL     string
	Description string
	Author      string

	Pages    []*Page            // all renderable pages, newest first
	Sections map[string][]*Page // pages grouped by section, newest first
	Menus    map[string][]MenuItem
	Data     map[string]any // decoded files from the data directory
}

// SortByDate orders pages newest first. Pages without a date sort last.
func SortByDate(pages []*Page) {
	sort.SliceStable(pages, func(i, j int) bool {
		if pages[i].Date.IsZero() {
			return false
		}
		if pages[j].Date.IsZero() {
			return true
		}
		return pages[i].Date.After(pages[j].Date)
	})
}

// SortMenu orders menu items by weight, recursively.
func SortMenu(items []MenuItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Weight < items[j].Weight
	})
	for i := range items {
		SortMenu(items[i].Children)
	}
}
