package site

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Bitlatte/quill/internal/model"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// writeFeeds emits feed.xml and sitemap.xml into the output directory.
// Feeds need absolute links, so they are only generated when a base URL
// is configured.
func (b *Builder) writeFeeds(site *model.Site, out string) error {
	items := make([]rssItem, 0, len(site.Pages))
	for _, p := range site.Pages {
		if p.Date.IsZero() {
			continue
		}
		link := AbsURL(site.BaseURL, p.Permalink)
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        link,
			Description: p.Summary,
			PubDate:     p.Date.Format(time.RFC1123Z),
			GUID:        link,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       site.Title,
			Link:        AbsURL(site.BaseURL, "/"),
			Description: site.Description,
			Items:       items,
		},
	}
	if err := writeXML(filepath.Join(out, "feed.xml"), feed); err != nil {
		return err
	}

	urls := []sitemapURL{{Loc: AbsURL(site.BaseURL, "/")}}
	for _, p := range site.Pages {
		u := sitemapURL{Loc: AbsURL(site.BaseURL, p.Permalink)}
		if !p.Date.IsZero() {
			u.LastMod = p.Date.Format("2006-01-02")
		}
		urls = append(urls, u)
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	return writeXML(filepath.Join(out, "sitemap.xml"), sitemap)
}

func writeXML(path string, v any) error {
	body, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	data := append([]byte(xml.Header), body...)
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
