package ingest

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type SourceFile struct {
	Path string
	Slug string
}

// Layout is the naming convention of the posts directory.
type Layout struct {
	Dir       string
	Extension string
	AltSuffix string
}

// PrimaryPath is where the article with this slug lives.
func (l Layout) PrimaryPath(slug string) string {
	return filepath.Join(l.Dir, slug+l.Extension)
}

// AltPath is where the English body of the article lives.
func (l Layout) AltPath(slug string) string {
	return filepath.Join(l.Dir, slug+l.AltSuffix+l.Extension)
}

// SlugOf derives the slug from a file name. ok is false for files that are
// not primary documents: other extensions and English siblings.
func (l Layout) SlugOf(name string) (string, bool) {
	if !strings.HasSuffix(name, l.Extension) {
		return "", false
	}
	slug := strings.TrimSuffix(name, l.Extension)
	if slug == "" || strings.HasPrefix(slug, ".") {
		return "", false
	}
	if l.AltSuffix != "" && strings.HasSuffix(slug, l.AltSuffix) {
		return "", false
	}
	return slug, true
}

// ValidSlug rejects slugs that could escape the posts directory or address a
// sibling file.
func (l Layout) ValidSlug(slug string) bool {
	if slug == "" || slug == "." || slug == ".." {
		return false
	}
	if strings.ContainsAny(slug, `/\`) || strings.Contains(slug, "..") {
		return false
	}
	_, ok := l.SlugOf(slug + l.Extension)
	return ok
}

// DiscoverSource lists the primary documents of the posts directory in file
// name order. A missing directory holds no documents.
func DiscoverSource(l Layout) ([]SourceFile, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var out []SourceFile
	for _, e := range entries {
		if e.IsDir() || !e.Type().IsRegular() {
			continue
		}
		slug, ok := l.SlugOf(e.Name())
		if !ok {
			continue
		}
		out = append(out, SourceFile{
			Path: filepath.Join(l.Dir, e.Name()),
			Slug: slug,
		})
	}
	return out, nil
}
