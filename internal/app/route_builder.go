package app

import (
	"folio/internal/domain/content"
	"folio/internal/domain/site"
)

// RouteBuilder lists every page of the site for a set of articles.
type RouteBuilder struct {
	Langs []content.Lang
}

func NewRouteBuilder() *RouteBuilder {
	return &RouteBuilder{Langs: content.Langs}
}

// BuildPageRoutes returns the per-language list pages, in a stable order.
// Tags sharing a key get one page.
func (rb *RouteBuilder) BuildPageRoutes(tags []string) []site.Route {
	keys := site.TagKeys(tags)
	var routes []site.Route
	for _, l := range rb.Langs {
		routes = append(routes,
			site.Route{Kind: site.RouteHome, Lang: l},
			site.Route{Kind: site.RouteBlog, Lang: l},
			site.Route{Kind: site.RouteTags, Lang: l},
			site.Route{Kind: site.RouteCV, Lang: l},
			site.Route{Kind: site.RouteFeed, Lang: l},
		)
		for _, k := range keys {
			routes = append(routes, site.Route{Kind: site.RouteTag, Lang: l, Key: k})
		}
	}
	return routes
}

func (rb *RouteBuilder) BuildPostRoutes(articles []content.Article) []site.Route {
	routes := make([]site.Route, 0, len(articles)*len(rb.Langs))
	for _, l := range rb.Langs {
		for _, a := range articles {
			routes = append(routes, site.Route{
				Kind: site.RoutePost,
				Lang: l,
				Slug: a.Slug,
			})
		}
	}
	return routes
}

// BuildSiteRoutes returns the language-neutral pages.
func (rb *RouteBuilder) BuildSiteRoutes() []site.Route {
	return []site.Route{
		{Kind: site.RouteRoot},
		{Kind: site.RouteNotFound},
		{Kind: site.RouteSitemap},
	}
}

// All is every route of the site.
func (rb *RouteBuilder) All(articles []content.Article, tags []string) []site.Route {
	routes := rb.BuildSiteRoutes()
	routes = append(routes, rb.BuildPageRoutes(tags)...)
	return append(routes, rb.BuildPostRoutes(articles)...)
}
