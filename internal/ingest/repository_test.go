package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/domain/config"
	"folio/internal/domain/content"
)

func newRepo(t *testing.T, dir string) (*Repository, *logtest.Hook) {
	t.Helper()
	log, hook := logtest.NewNullLogger()
	cfg := config.Default().Content
	cfg.PostsDir = dir
	return NewRepository(cfg, log), hook
}

func writePost(t *testing.T, dir, name, data string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644))
}

func post(date, titleFr string, extra string) string {
	return "---\npublishedAt: " + date + "\ntitleFr: " + titleFr + "\ntitleEn: " + titleFr + " (en)\n" + extra + "---\nCorps de " + titleFr + "\n"
}

func slugs(arts []content.Article) []string {
	out := make([]string, 0, len(arts))
	for _, a := range arts {
		out = append(out, a.Slug)
	}
	return out
}

func TestRepository_ListAllSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "old.md", post("2025-01-01", "Ancien", ""))
	writePost(t, dir, "new.md", post("2025-06-15", "Nouveau", ""))
	writePost(t, dir, "mid.md", post("2025-03-10", "Milieu", ""))
	writePost(t, dir, "broken.md", "---\ntitleFr: sans date\n---\nbody")
	writePost(t, dir, "nofront.md", "# just markdown")
	writePost(t, dir, "notes.txt", post("2030-01-01", "Ignoré", ""))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "drafts.md"), 0o755))

	repo, hook := newRepo(t, dir)

	assert.Equal(t, []string{"new", "mid", "old"}, slugs(repo.ListAll()))

	var skipped int
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Message == "article skipped" {
			skipped++
		}
	}
	assert.Equal(t, 2, skipped)
}

func TestRepository_Audit(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "ok.md", post("2025-01-01", "Bon", ""))
	writePost(t, dir, "bad.md", "---\npublishedAt: someday\ntitleFr: a\ntitleEn: b\n---\nbody")

	repo, _ := newRepo(t, dir)
	arts, warns := repo.Audit()

	assert.Equal(t, []string{"ok"}, slugs(arts))
	require.Len(t, warns, 1)
	assert.Equal(t, filepath.Join(dir, "bad.md"), warns[0].Path)
	assert.Contains(t, warns[0].Msg, "publishedAt")
}

func TestRepository_FeaturedAndTags(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "a.md", post("2025-01-01", "A", "featured: true\ntags:\n  - react\n  - js\n"))
	writePost(t, dir, "b.md", post("2025-02-01", "B", "tags:\n  - js\n  - go\n"))
	writePost(t, dir, "c.md", post("2025-03-01", "C", "featured: true\n"))

	repo, _ := newRepo(t, dir)

	assert.Equal(t, []string{"c", "a"}, slugs(repo.ListFeatured()))
	assert.Equal(t, []string{"go", "js", "react"}, repo.ListTags())
	assert.Equal(t, []string{"b", "a"}, slugs(repo.ListByTag("js")))
	assert.Equal(t, []content.Article{}, repo.ListByTag("rust"))
}

func TestRepository_GetBySlug(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "hello.md", post("2025-01-01", "Salut", "excerptFr: >-\n  line one\n  line two\n"))
	writePost(t, dir, "hello.en.md", "---\ntitleEn: ignored\n---\nHello body\n")
	writePost(t, dir, "broken.md", "no front matter")

	repo, _ := newRepo(t, dir)

	a, ok := repo.GetBySlug("hello")
	require.True(t, ok)
	assert.Equal(t, "Salut", a.TitleFr)
	assert.Equal(t, "line one line two", a.ExcerptFr)
	assert.Equal(t, "Corps de Salut\n", a.Content)
	assert.Equal(t, "Hello body\n", a.ContentEn)
	assert.Equal(t, "Hello body\n", a.Body(content.LangEN))

	for _, slug := range []string{"missing", "broken", "", "..", "../hello", "hello.en", "sub/hello"} {
		_, ok := repo.GetBySlug(slug)
		assert.False(t, ok, "slug %q", slug)
	}
}

func TestRepository_EnglishSiblingNotListed(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "hello.md", post("2025-01-01", "Salut", ""))
	writePost(t, dir, "hello.en.md", post("2026-01-01", "Hello", ""))
	writePost(t, dir, "solo.md", post("2024-01-01", "Seul", ""))

	repo, _ := newRepo(t, dir)
	arts := repo.ListAll()

	assert.Equal(t, []string{"hello", "solo"}, slugs(arts))
	assert.True(t, arts[0].HasEnglishBody())
	assert.False(t, arts[1].HasEnglishBody())
	assert.Equal(t, arts[1].Content, arts[1].Body(content.LangEN))
}

func TestRepository_MissingDirectory(t *testing.T) {
	repo, _ := newRepo(t, filepath.Join(t.TempDir(), "nope"))

	assert.Empty(t, repo.ListAll())
	assert.Empty(t, repo.ListFeatured())
	assert.Equal(t, []string{}, repo.ListTags())
	_, ok := repo.GetBySlug("anything")
	assert.False(t, ok)
}

func TestRepository_SeesNewFiles(t *testing.T) {
	dir := t.TempDir()
	repo, _ := newRepo(t, dir)
	assert.Empty(t, repo.ListAll())

	writePost(t, dir, "late.md", post("2025-01-01", "Tard", ""))
	assert.Equal(t, []string{"late"}, slugs(repo.ListAll()))
}

func TestLayout_SlugOf(t *testing.T) {
	l := Layout{Dir: "posts", Extension: ".md", AltSuffix: ".en"}

	tests := []struct {
		name string
		slug string
		ok   bool
	}{
		{"hello.md", "hello", true},
		{"a.b.md", "a.b", true},
		{"hello.en.md", "", false},
		{".hidden.md", "", false},
		{".md", "", false},
		{"hello.markdown", "", false},
		{"hello", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slug, ok := l.SlugOf(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.slug, slug)
		})
	}
	assert.Equal(t, filepath.Join("posts", "hello.en.md"), l.AltPath("hello"))
}
