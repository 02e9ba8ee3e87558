package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"folio/internal/domain/content"
	"folio/internal/domain/site"
)

func TestRouteBuilder_All(t *testing.T) {
	rb := NewRouteBuilder()
	arts := []content.Article{{Slug: "a"}, {Slug: "b"}}

	routes := rb.All(arts, []string{"go"})

	urls := make(map[string]bool, len(routes))
	for _, r := range routes {
		assert.False(t, urls[r.URL()], "duplicate %s", r.URL())
		urls[r.URL()] = true
	}

	// 3 site routes, 5 list pages and 1 tag page per language, 2 posts per language
	assert.Len(t, routes, 3+2*6+2*2)
	for _, u := range []string{
		"/", "/404.html", "/sitemap.xml",
		"/fr/", "/en/blog/", "/fr/tags/go/", "/en/cv/", "/fr/feed.xml",
		"/fr/blog/a/", "/en/blog/b/",
	} {
		assert.True(t, urls[u], u)
	}
}

func TestRouteBuilder_PostRoutesPerLanguage(t *testing.T) {
	rb := &RouteBuilder{Langs: []content.Lang{content.LangEN}}
	routes := rb.BuildPostRoutes([]content.Article{{Slug: "only"}})

	assert.Equal(t, []site.Route{{Kind: site.RoutePost, Lang: content.LangEN, Slug: "only"}}, routes)
}

func TestRouteBuilder_TagPagesByKey(t *testing.T) {
	rb := &RouteBuilder{Langs: []content.Lang{content.LangEN}}
	routes := rb.BuildPageRoutes([]string{"Go", "go", "!"})

	var tags []string
	for _, r := range routes {
		if r.Kind == site.RouteTag {
			tags = append(tags, r.URL())
		}
	}
	assert.Equal(t, []string{"/en/tags/go/", "/en/tags/x21/"}, tags)
}
