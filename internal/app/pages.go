package app

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"folio/internal/domain/config"
	"folio/internal/domain/content"
	"folio/internal/domain/cv"
	"folio/internal/domain/site"
	"folio/internal/ingest"
	"folio/internal/render"
	"folio/internal/resume"
)

// RecentLimit is the number of recent articles on a home page.
const RecentLimit = 5

var ErrNotFound = errors.New("page not found")

// Snapshot is the site content read at one point in time. Pages rendered from
// the same snapshot agree with each other.
type Snapshot struct {
	Articles []content.Article
	Warnings []ingest.Warning
	Tags     []string
	// CV is nil when the record could not be loaded.
	CV *cv.Record
}

func (s *Snapshot) Article(slug string) (content.Article, bool) {
	for _, a := range s.Articles {
		if a.Slug == slug {
			return a, true
		}
	}
	return content.Article{}, false
}

func (s *Snapshot) Featured() []content.Article {
	out := []content.Article{}
	for _, a := range s.Articles {
		if a.Featured {
			out = append(out, a)
		}
	}
	return out
}

// TagPage returns the tags whose key is key and the articles carrying any of
// them.
func (s *Snapshot) TagPage(key string) ([]string, []content.Article) {
	names := site.TagsWithKey(s.Tags, key)
	out := []content.Article{}
	for _, a := range s.Articles {
		for _, n := range names {
			if a.HasTag(n) {
				out = append(out, a)
				break
			}
		}
	}
	return names, out
}

// TagStats lists one entry per tag page, most used first, ties by name.
func (s *Snapshot) TagStats() []render.TagStat {
	keys := site.TagKeys(s.Tags)
	stats := make([]render.TagStat, 0, len(keys))
	for _, k := range keys {
		names, arts := s.TagPage(k)
		stats = append(stats, render.TagStat{
			Name:  strings.Join(names, ", "),
			Key:   k,
			Count: len(arts),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count == stats[j].Count {
			return stats[i].Name < stats[j].Name
		}
		return stats[i].Count > stats[j].Count
	})
	return stats
}

// Pages renders any route of the site from a snapshot. It is shared by the
// static builder and the dev server.
type Pages struct {
	Site       config.SiteConfig
	Articles   *ingest.Repository
	CVPath     string
	Markdown   *render.MarkdownRenderer
	Tpl        render.Renderer
	Log        logrus.FieldLogger
	LiveReload bool
	Now        func() time.Time
}

func NewPages(cfg config.Config, repo *ingest.Repository, tpl render.Renderer, log logrus.FieldLogger) *Pages {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Pages{
		Site:     cfg.Site,
		Articles: repo,
		CVPath:   cfg.Content.CVFile,
		Markdown: render.NewMarkdownRenderer(),
		Tpl:      tpl,
		Log:      log,
		Now:      time.Now,
	}
}

// Snapshot reads the articles and the CV record.
func (p *Pages) Snapshot() *Snapshot {
	arts, warns := p.Articles.Audit()
	snap := &Snapshot{
		Articles: arts,
		Warnings: warns,
		Tags:     ingest.TagsOf(arts),
	}
	if p.CVPath != "" {
		rec, err := resume.Load(p.CVPath)
		if err != nil {
			p.Log.WithError(err).WithField("path", p.CVPath).Warn("cv unavailable")
		} else {
			snap.CV = rec
		}
	}
	return snap
}

// CVView projects the snapshot's record; nil when there is none.
func (p *Pages) CVView(snap *Snapshot, l content.Lang) *cv.View {
	return resume.ProjectAt(snap.CV, l, p.Now())
}

func (p *Pages) base(l content.Lang, r site.Route, title string) render.Base {
	return render.Base{
		Site:       p.Site,
		Lang:       l,
		Route:      r,
		Title:      title,
		LiveReload: p.LiveReload,
		Generated:  p.Now(),
	}
}

// Render produces one route. Unknown posts and tags give ErrNotFound.
func (p *Pages) Render(ctx context.Context, snap *Snapshot, r site.Route) ([]byte, error) {
	switch r.Kind {
	case site.RouteRoot:
		return p.home(ctx, snap, site.Route{Kind: site.RouteHome, Lang: p.Site.DefaultLanguage})
	case site.RouteHome:
		return p.home(ctx, snap, r)
	case site.RouteBlog:
		return p.Tpl.RenderBlog(ctx, render.BlogPage{
			Base:  p.base(r.Lang, r, render.Label(r.Lang, "blog")),
			Posts: content.LocalizeAll(snap.Articles, r.Lang),
		})
	case site.RoutePost:
		a, ok := snap.Article(r.Slug)
		if !ok {
			return nil, ErrNotFound
		}
		return p.post(ctx, a, r)
	case site.RouteTags:
		stats := snap.TagStats()
		return p.Tpl.RenderTags(ctx, render.TagsPage{
			Base:  p.base(r.Lang, r, render.Label(r.Lang, "tags")),
			Tags:  stats,
			Total: len(stats),
		})
	case site.RouteTag:
		names, posts := snap.TagPage(r.Key)
		if len(posts) == 0 {
			return nil, ErrNotFound
		}
		tag := strings.Join(names, ", ")
		return p.Tpl.RenderTag(ctx, render.TagPage{
			Base:  p.base(r.Lang, r, tag),
			Tag:   tag,
			Posts: content.LocalizeAll(posts, r.Lang),
		})
	case site.RouteCV:
		return p.Tpl.RenderCV(ctx, render.CVPage{
			Base: p.base(r.Lang, r, render.Label(r.Lang, "cv")),
			CV:   p.CVView(snap, r.Lang),
		})
	case site.RouteFeed:
		return render.Feed(p.Site, r.Lang, content.LocalizeAll(snap.Articles, r.Lang))
	case site.RouteSitemap:
		return p.sitemap(snap)
	case site.RouteNotFound:
		return p.NotFound(ctx, p.Site.DefaultLanguage, "")
	}
	return nil, fmt.Errorf("unknown route kind %q", r.Kind)
}

// NotFound renders the 404 page in l for the requested path.
func (p *Pages) NotFound(ctx context.Context, l content.Lang, path string) ([]byte, error) {
	r := site.Route{Kind: site.RouteNotFound}
	return p.Tpl.RenderNotFound(ctx, render.NotFoundPage{
		Base: p.base(l, r, render.Label(l, "not_found")),
		Path: path,
	})
}

func (p *Pages) home(ctx context.Context, snap *Snapshot, r site.Route) ([]byte, error) {
	recent := snap.Articles
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	return p.Tpl.RenderHome(ctx, render.HomePage{
		Base:     p.base(r.Lang, r, ""),
		Featured: content.LocalizeAll(snap.Featured(), r.Lang),
		Recent:   content.LocalizeAll(recent, r.Lang),
		CV:       p.CVView(snap, r.Lang),
	})
}

func (p *Pages) post(ctx context.Context, a content.Article, r site.Route) ([]byte, error) {
	loc := a.Localize(r.Lang)
	md, err := p.Markdown.Render([]byte(loc.Body))
	if err != nil {
		return nil, fmt.Errorf("markdown %s: %w", a.Slug, err)
	}
	return p.Tpl.RenderPost(ctx, render.PostPage{
		Base:        p.base(r.Lang, r, loc.Title),
		Post:        loc,
		HTML:        template.HTML(md.HTML),
		TOC:         md.Headings,
		Words:       md.Words,
		ReadMinutes: md.ReadMinutes,
	})
}

func (p *Pages) sitemap(snap *Snapshot) ([]byte, error) {
	var urls []render.SitemapURL
	for _, r := range NewRouteBuilder().All(snap.Articles, snap.Tags) {
		switch r.Kind {
		case site.RouteRoot, site.RouteNotFound, site.RouteSitemap, site.RouteFeed:
			continue
		}
		u := render.SitemapURL{Loc: render.AbsURL(p.Site.SiteURL, r.URL())}
		if r.Kind == site.RoutePost {
			if a, ok := snap.Article(r.Slug); ok {
				u.LastMod = a.PublishedAt.Format(time.DateOnly)
			}
		}
		urls = append(urls, u)
	}
	return render.Sitemap(urls)
}
