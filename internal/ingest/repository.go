package ingest

import (
	"errors"
	"io/fs"
	"os"
	"sort"

	"github.com/sirupsen/logrus"

	"folio/internal/domain/config"
	"folio/internal/domain/content"
)

type Warning struct {
	Path string
	Msg  string
}

// Repository reads articles from the posts directory. It keeps no state
// between calls: every query reads the directory again and returns freshly
// built articles, so it is safe for concurrent use.
type Repository struct {
	layout Layout
	log    logrus.FieldLogger
}

func NewRepository(cfg config.ContentConfig, log logrus.FieldLogger) *Repository {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Repository{
		layout: Layout{
			Dir:       cfg.PostsDir,
			Extension: cfg.Extension,
			AltSuffix: cfg.AltSuffix,
		},
		log: log.WithField("component", "articles"),
	}
}

func (r *Repository) Layout() Layout { return r.layout }

// ListAll returns every valid article, most recent first. Files that fail
// validation are left out.
func (r *Repository) ListAll() []content.Article {
	arts, _ := r.Audit()
	return arts
}

// ListFeatured is ListAll restricted to featured articles.
func (r *Repository) ListFeatured() []content.Article {
	out := []content.Article{}
	for _, a := range r.ListAll() {
		if a.Featured {
			out = append(out, a)
		}
	}
	return out
}

// ListTags returns the distinct tags of all valid articles, sorted.
func (r *Repository) ListTags() []string {
	return TagsOf(r.ListAll())
}

// TagsOf returns the distinct tags of arts, sorted.
func TagsOf(arts []content.Article) []string {
	set := make(map[string]struct{})
	for _, a := range arts {
		for _, t := range a.Tags {
			set[t] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// ListByTag returns the valid articles carrying tag, most recent first.
func (r *Repository) ListByTag(tag string) []content.Article {
	out := []content.Article{}
	for _, a := range r.ListAll() {
		if a.HasTag(tag) {
			out = append(out, a)
		}
	}
	return out
}

// GetBySlug loads one article. ok is false when the slug is unknown or the
// file does not pass validation.
func (r *Repository) GetBySlug(slug string) (content.Article, bool) {
	if !r.layout.ValidSlug(slug) {
		return content.Article{}, false
	}
	a, w, err := r.load(SourceFile{Path: r.layout.PrimaryPath(slug), Slug: slug})
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			r.log.WithError(err).WithField("slug", slug).Warn("read article")
		}
		return content.Article{}, false
	}
	if w != nil {
		r.warn(*w)
		return content.Article{}, false
	}
	return a, true
}

// Audit returns the valid articles, most recent first, along with one
// warning per file that was dropped.
func (r *Repository) Audit() ([]content.Article, []Warning) {
	files, err := DiscoverSource(r.layout)
	if err != nil {
		r.log.WithError(err).WithField("dir", r.layout.Dir).Warn("list posts directory")
		return []content.Article{}, []Warning{{Path: r.layout.Dir, Msg: err.Error()}}
	}

	out := make([]content.Article, 0, len(files))
	var warns []Warning
	for _, sf := range files {
		a, w, err := r.load(sf)
		if err != nil {
			w = &Warning{Path: sf.Path, Msg: err.Error()}
		}
		if w != nil {
			r.warn(*w)
			warns = append(warns, *w)
			continue
		}
		out = append(out, a)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	return out, warns
}

// load reads and validates one file. I/O failures come back as err; a file
// that reads fine but fails validation comes back as a warning.
func (r *Repository) load(sf SourceFile) (content.Article, *Warning, error) {
	raw, err := os.ReadFile(sf.Path)
	if err != nil {
		return content.Article{}, nil, err
	}

	meta, body, ok := Extract(string(raw))
	if !ok {
		return content.Article{}, &Warning{Path: sf.Path, Msg: "no front matter block"}, nil
	}
	a, err := DecodeArticle(sf.Slug, meta, body)
	if err != nil {
		return content.Article{}, &Warning{Path: sf.Path, Msg: err.Error()}, nil
	}

	alt, err := os.ReadFile(r.layout.AltPath(sf.Slug))
	switch {
	case err == nil:
		a.ContentEn = StripFrontMatter(string(alt))
	case !errors.Is(err, fs.ErrNotExist):
		r.log.WithError(err).WithField("slug", sf.Slug).Warn("read english body")
	}
	return a, nil, nil
}

func (r *Repository) warn(w Warning) {
	r.log.WithFields(logrus.Fields{
		"path":   w.Path,
		"reason": w.Msg,
	}).Warn("article skipped")
}
