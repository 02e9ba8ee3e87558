package content

import (
	"strings"
	"time"
)

type Article struct {
	Slug        string    `json:"slug"`
	PublishedAt time.Time `json:"publishedAt"`
	Featured    bool      `json:"featured"`

	TitleFr   string `json:"titleFr"`
	TitleEn   string `json:"titleEn"`
	ExcerptFr string `json:"excerptFr,omitempty"`
	ExcerptEn string `json:"excerptEn,omitempty"`

	Tags []string `json:"tags"`

	// Content is the body of the primary (French) file, ContentEn the body of
	// the optional English sibling.
	Content   string `json:"content"`
	ContentEn string `json:"contentEn,omitempty"`
}

func (a Article) Title(l Lang) string {
	return Pick(l, a.TitleFr, a.TitleEn)
}

// Excerpt falls back to French when the English excerpt is missing.
func (a Article) Excerpt(l Lang) string {
	if l == LangEN && strings.TrimSpace(a.ExcerptEn) != "" {
		return a.ExcerptEn
	}
	return a.ExcerptFr
}

// Body falls back to French when the article has no English sibling.
func (a Article) Body(l Lang) string {
	if l == LangEN && a.HasEnglishBody() {
		return a.ContentEn
	}
	return a.Content
}

func (a Article) HasEnglishBody() bool {
	return strings.TrimSpace(a.ContentEn) != ""
}

func (a Article) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Localized is the article flattened to one language, as handed to templates
// and the JSON API.
type Localized struct {
	Slug        string    `json:"slug"`
	Lang        Lang      `json:"lang"`
	PublishedAt time.Time `json:"publishedAt"`
	Featured    bool      `json:"featured"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt,omitempty"`
	Tags        []string  `json:"tags"`
	Body        string    `json:"body"`
	// Translated is false when an English view shows the French body.
	Translated bool `json:"translated"`
}

func (a Article) Localize(l Lang) Localized {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	return Localized{
		Slug:        a.Slug,
		Lang:        l,
		PublishedAt: a.PublishedAt,
		Featured:    a.Featured,
		Title:       a.Title(l),
		Excerpt:     a.Excerpt(l),
		Tags:        tags,
		Body:        a.Body(l),
		Translated:  l == LangFR || a.HasEnglishBody(),
	}
}

func LocalizeAll(arts []Article, l Lang) []Localized {
	out := make([]Localized, 0, len(arts))
	for _, a := range arts {
		out = append(out, a.Localize(l))
	}
	return out
}
