package render

import (
	"html/template"
	"time"

	"folio/internal/domain/config"
	"folio/internal/domain/content"
	"folio/internal/domain/cv"
	"folio/internal/domain/site"
)

type Heading struct {
	Level int
	ID    string
	Text  string
}

// Base is embedded in every page.
type Base struct {
	Site  config.SiteConfig
	Lang  content.Lang
	Route site.Route
	Title string
	// LiveReload injects the dev server's reload script.
	LiveReload bool
	Generated  time.Time
}

// AltURL is the current page in the other language.
func (b Base) AltURL() string {
	return b.Route.Alternate().URL()
}

func (b Base) AltLang() content.Lang {
	return b.Lang.Other()
}

type HomePage struct {
	Base
	Featured []content.Localized
	Recent   []content.Localized
	// CV is nil when the record could not be loaded.
	CV *cv.View
}

type BlogPage struct {
	Base
	Posts []content.Localized
}

type PostPage struct {
	Base
	Post        content.Localized
	HTML        template.HTML
	TOC         []Heading
	Words       int
	ReadMinutes int
}

type TagPage struct {
	Base
	Tag   string
	Posts []content.Localized
}

// TagStat is one tag page: the tags sharing Key, joined in Name, and the
// number of articles carrying any of them.
type TagStat struct {
	Name  string
	Key   string
	Count int
}

type TagsPage struct {
	Base
	Tags  []TagStat
	Total int
}

type CVPage struct {
	Base
	CV *cv.View
}

type NotFoundPage struct {
	Base
	Path string
}
