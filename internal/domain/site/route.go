package site

import (
	"encoding/hex"
	"path"
	"strings"
	"unicode"

	"folio/internal/domain/content"
)

type RouteKind string

const (
	RouteRoot     RouteKind = "root"
	RouteHome     RouteKind = "home"
	RouteBlog     RouteKind = "blog"
	RoutePost     RouteKind = "post"
	RouteTags     RouteKind = "tags"
	RouteTag      RouteKind = "tag"
	RouteCV       RouteKind = "cv"
	RouteFeed     RouteKind = "feed"
	RouteSitemap  RouteKind = "sitemap"
	RouteNotFound RouteKind = "404"
)

// Route is one output page. Lang is empty for the language-neutral pages
// (root, sitemap, 404).
type Route struct {
	Kind RouteKind
	Lang content.Lang
	Slug string
	// Key is the TagKey of the tag page for RouteTag.
	Key string
}

// URL is the public path of the route.
func (r Route) URL() string {
	switch r.Kind {
	case RouteRoot:
		return "/"
	case RouteSitemap:
		return "/sitemap.xml"
	case RouteNotFound:
		return "/404.html"
	case RouteHome:
		return HomeURL(r.Lang)
	case RouteBlog:
		return BlogURL(r.Lang)
	case RoutePost:
		return PostURL(r.Lang, r.Slug)
	case RouteTags:
		return TagsURL(r.Lang)
	case RouteTag:
		return TagsURL(r.Lang) + r.Key + "/"
	case RouteCV:
		return CVURL(r.Lang)
	case RouteFeed:
		return FeedURL(r.Lang)
	}
	return "/"
}

// OutPath is where the route is written below the public directory, with
// forward slashes.
func (r Route) OutPath() string {
	u := strings.TrimPrefix(r.URL(), "/")
	if u == "" || strings.HasSuffix(u, "/") {
		return u + "index.html"
	}
	return u
}

// Alternate is the same page in the other language, for language switchers
// and hreflang links. Language-neutral routes are their own alternate.
func (r Route) Alternate() Route {
	if r.Lang == "" {
		return r
	}
	alt := r
	alt.Lang = r.Lang.Other()
	return alt
}

func (r Route) String() string {
	parts := []string{string(r.Kind)}
	if r.Lang != "" {
		parts = append(parts, "lang="+string(r.Lang))
	}
	if r.Slug != "" {
		parts = append(parts, "slug="+r.Slug)
	}
	if r.Key != "" {
		parts = append(parts, "key="+r.Key)
	}
	return strings.Join(parts, " ")
}

func HomeURL(l content.Lang) string { return "/" + string(l) + "/" }
func BlogURL(l content.Lang) string { return HomeURL(l) + "blog/" }
func TagsURL(l content.Lang) string { return HomeURL(l) + "tags/" }
func CVURL(l content.Lang) string { return HomeURL(l) + "cv/" }
func FeedURL(l content.Lang) string { return HomeURL(l) + "feed.xml" }
func PostURL(l content.Lang, slug string) string {
	return BlogURL(l) + slug + "/"
}

func TagURL(l content.Lang, tag string) string {
	return TagsURL(l) + TagKey(tag) + "/"
}

// LangURL joins a language-relative path ("blog/", "/cv/") to the language
// root.
func LangURL(l content.Lang, rel string) string {
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" {
		return HomeURL(l)
	}
	out := path.Join("/", string(l), rel)
	if strings.HasSuffix(rel, "/") {
		out += "/"
	}
	return out
}

// TagKey turns a tag into a URL segment: lower case, runs of spaces and
// separators become one dash, anything else outside letters and digits is
// dropped. A tag with nothing left is hex encoded instead. Tags that share a
// key share one tag page.
func TagKey(tag string) string {
	tag = strings.TrimSpace(tag)
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(tag) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case r == '+':
			b.WriteString("plus")
			dash = false
		case r == '#':
			b.WriteString("sharp")
			dash = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.' || r == '/':
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	if key := strings.TrimSuffix(b.String(), "-"); key != "" {
		return key
	}
	return "x" + hex.EncodeToString([]byte(tag))
}

// TagKeys returns the distinct keys of tags, in order of first appearance.
func TagKeys(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	keys := make([]string, 0, len(tags))
	for _, t := range tags {
		k := TagKey(t)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}

// TagsWithKey returns the tags of tags whose key is key.
func TagsWithKey(tags []string, key string) []string {
	var out []string
	for _, t := range tags {
		if TagKey(t) == key {
			out = append(out, t)
		}
	}
	return out
}
