package render

import (
	"bytes"
	"encoding/xml"
	"strings"
	"time"

	"folio/internal/domain/config"
	"folio/internal/domain/content"
	"folio/internal/domain/site"
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
	Language    string    `xml:"language"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description,omitempty"`
	PubDate     string   `xml:"pubDate"`
	GUID        string   `xml:"guid"`
	Categories  []string `xml:"category"`
}

// AbsURL joins a site path to the configured site URL.
func AbsURL(siteURL, p string) string {
	return strings.TrimRight(siteURL, "/") + p
}

// Feed renders the RSS 2.0 feed of one language. posts are expected newest
// first.
func Feed(cfg config.SiteConfig, l content.Lang, posts []content.Localized) ([]byte, error) {
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		link := AbsURL(cfg.SiteURL, site.PostURL(l, p.Slug))
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        link,
			Description: p.Excerpt,
			PubDate:     p.PublishedAt.Format(time.RFC1123Z),
			GUID:        link,
			Categories:  p.Tags,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       cfg.Title,
			Link:        AbsURL(cfg.SiteURL, site.HomeURL(l)),
			Description: cfg.Description,
			Language:    string(l),
			Items:       items,
		},
	}
	return encodeXML(feed)
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

type SitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func Sitemap(urls []SitemapURL) ([]byte, error) {
	return encodeXML(sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	})
}

func encodeXML(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
