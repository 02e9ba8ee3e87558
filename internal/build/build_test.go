package build

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/domain/config"
)

type fixture struct {
	cfg   config.Config
	posts string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	root := t.TempDir()
	posts := filepath.Join(root, "posts")
	require.NoError(t, os.MkdirAll(posts, 0o755))

	cfg := config.Default()
	cfg.Content.PostsDir = posts
	cfg.Content.CVFile = filepath.Join("..", "resume", "testdata", "cv.yaml")
	cfg.Build.PublicDir = filepath.Join(root, "public")
	cfg.Build.ManifestPath = filepath.Join(root, ".folio", "manifest.db")
	cfg.Build.ThemeDir = filepath.Join("..", "..", "themes")
	cfg.Build.Workers = 2
	return fixture{cfg: cfg, posts: posts}
}

func (f fixture) post(t *testing.T, slug, date, tag string) {
	t.Helper()
	src := "---\npublishedAt: " + date + "\ntitleFr: " + slug + " fr\ntitleEn: " + slug + " en\ntags:\n  - " + tag + "\n---\nCorps de " + slug + ".\n"
	require.NoError(t, os.WriteFile(filepath.Join(f.posts, slug+".md"), []byte(src), 0o644))
}

func (f fixture) run(t *testing.T) *Result {
	t.Helper()
	log, _ := logtest.NewNullLogger()
	b := New(f.cfg, log)
	b.Now = func() time.Time { return time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC) }
	res, err := b.Run(context.Background())
	require.NoError(t, err)
	return res
}

func (f fixture) exists(rel string) bool {
	_, err := os.Stat(filepath.Join(f.cfg.Build.PublicDir, filepath.FromSlash(rel)))
	return err == nil
}

func TestBuilder_Run(t *testing.T) {
	f := newFixture(t)
	f.post(t, "first", "2025-01-01", "go")
	f.post(t, "second", "2025-06-15", "web dev")
	require.NoError(t, os.WriteFile(filepath.Join(f.posts, "bad.md"), []byte("no front matter"), 0o644))

	res := f.run(t)
	assert.Equal(t, 2, res.Articles)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, 0, res.Unchanged)
	assert.Equal(t, 0, res.Removed)
	// 3 site pages, per language 5 list pages + 2 tags + 2 posts, one stylesheet
	assert.Equal(t, 3+2*9, res.Pages)
	assert.Equal(t, res.Pages+1, res.Written)

	for _, rel := range []string{
		"index.html", "404.html", "sitemap.xml", "style.css",
		"fr/index.html", "en/blog/index.html", "fr/blog/first/index.html",
		"en/blog/second/index.html", "en/tags/web-dev/index.html",
		"fr/cv/index.html", "en/feed.xml",
	} {
		assert.True(t, f.exists(rel), rel)
	}

	body, err := os.ReadFile(filepath.Join(f.cfg.Build.PublicDir, "en", "blog", "second", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(body), "second en")
}

func TestBuilder_Incremental(t *testing.T) {
	f := newFixture(t)
	f.post(t, "keep", "2025-01-01", "go")
	f.post(t, "gone", "2025-02-01", "old")

	first := f.run(t)
	require.True(t, f.exists("fr/blog/gone/index.html"))

	// second run with nothing changed
	again := f.run(t)
	assert.Equal(t, 0, again.Written)
	assert.Equal(t, first.Written, again.Unchanged)

	// a deleted article takes its pages along
	require.NoError(t, os.Remove(filepath.Join(f.posts, "gone.md")))
	third := f.run(t)
	assert.False(t, f.exists("fr/blog/gone/index.html"))
	assert.False(t, f.exists("fr/blog/gone"))
	assert.False(t, f.exists("en/tags/old/index.html"))
	assert.True(t, f.exists("fr/blog/keep/index.html"))
	// 2 posts, 2 tag pages
	assert.Equal(t, 4, third.Removed)
	assert.Positive(t, third.Written)

	// a page deleted by hand is written again
	require.NoError(t, os.Remove(filepath.Join(f.cfg.Build.PublicDir, "fr", "blog", "keep", "index.html")))
	fourth := f.run(t)
	assert.Equal(t, 1, fourth.Written)
	assert.True(t, f.exists("fr/blog/keep/index.html"))
}

func TestBuilder_TagPagesDoNotCollide(t *testing.T) {
	f := newFixture(t)
	f.post(t, "lower", "2025-01-01", "go")
	f.post(t, "upper", "2025-02-01", "Go")
	f.post(t, "rocket", "2025-03-01", "🚀")

	res := f.run(t)
	// 3 site pages, per language 5 list pages + 2 tag pages + 3 posts
	assert.Equal(t, 3+2*10, res.Pages)

	read := func(rel string) string {
		b, err := os.ReadFile(filepath.Join(f.cfg.Build.PublicDir, filepath.FromSlash(rel)))
		require.NoError(t, err)
		return string(b)
	}
	index := read("en/tags/index.html")
	assert.Contains(t, index, `href="/en/tags/go/"`)
	assert.Contains(t, index, `href="/en/tags/xf09f9a80/"`)

	goPage := read("en/tags/go/index.html")
	assert.Contains(t, goPage, "lower en")
	assert.Contains(t, goPage, "upper en")
	assert.Contains(t, read("en/tags/xf09f9a80/index.html"), "rocket en")
}

func TestBuilder_MissingTheme(t *testing.T) {
	f := newFixture(t)
	f.cfg.Site.Theme = "nope"

	log, _ := logtest.NewNullLogger()
	_, err := New(f.cfg, log).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing template")
}
