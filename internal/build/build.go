package build

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"folio/internal/app"
	"folio/internal/domain/build"
	"folio/internal/domain/config"
	"folio/internal/ingest"
	"folio/internal/manifest"
	"folio/internal/render"
)

type Builder struct {
	Cfg config.Config
	Log logrus.FieldLogger
	Now func() time.Time
}

func New(cfg config.Config, log logrus.FieldLogger) *Builder {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Builder{
		Cfg: cfg,
		Log: log.WithField("component", "build"),
		Now: time.Now,
	}
}

type Result struct {
	Articles  int
	Pages     int
	Written   int
	Unchanged int
	Removed   int
	Warnings  []ingest.Warning
}

func (b *Builder) Run(ctx context.Context) (*Result, error) {
	repo := ingest.NewRepository(b.Cfg.Content, b.Log)
	tpl, err := render.NewTemplateRenderer(b.Cfg.Build.ThemeDir, b.Cfg.Site.Theme)
	if err != nil {
		return nil, fmt.Errorf("load theme(%s): %w", b.Cfg.Site.Theme, err)
	}
	pages := app.NewPages(b.Cfg, repo, tpl, b.Log)
	pages.Now = b.Now

	st, err := manifest.Open(manifest.OpenOptions{Path: b.Cfg.Build.ManifestPath})
	if err != nil {
		return nil, err
	}
	defer st.Close()

	prev, err := st.Load()
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}

	outDir := b.Cfg.Build.PublicDir
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir public: %w", err)
	}

	snap := pages.Snapshot()
	out := newOutput(outDir, prev)

	routes := app.NewRouteBuilder().All(snap.Articles, snap.Tags)
	b.Log.WithFields(logrus.Fields{
		"articles": len(snap.Articles),
		"routes":   len(routes),
	}).Info("building site")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.Cfg.Build.Workers)
	for _, r := range routes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := pages.Render(gctx, snap, r)
			if err != nil {
				return fmt.Errorf("render %s: %w", r, err)
			}
			return out.write(r.OutPath(), data)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := b.copyStaticAssets(out); err != nil {
		return nil, fmt.Errorf("copy static assets: %w", err)
	}

	stale, err := st.Commit(out.entries, b.Now())
	if err != nil {
		return nil, fmt.Errorf("commit manifest: %w", err)
	}
	for _, rel := range stale {
		if err := removeOutput(outDir, rel); err != nil {
			return nil, err
		}
	}

	res := &Result{
		Articles:  len(snap.Articles),
		Pages:     len(routes),
		Written:   out.written,
		Unchanged: out.unchanged,
		Removed:   len(stale),
		Warnings:  snap.Warnings,
	}
	b.Log.WithFields(logrus.Fields{
		"written":   res.Written,
		"unchanged": res.Unchanged,
		"removed":   res.Removed,
		"skipped":   len(res.Warnings),
	}).Info("build done")
	return res, nil
}

func (b *Builder) copyStaticAssets(out *output) error {
	src := filepath.Join(b.Cfg.Build.ThemeDir, b.Cfg.Site.Theme, "static")
	// 如果没有 static 目录就算了
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if !info.IsDir() {
		return nil
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		in, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return out.write(filepath.ToSlash(rel), in)
	})
}

// output writes generated files, skipping those whose fingerprint matches
// the previous build and that are still on disk.
type output struct {
	dir  string
	prev manifest.Entries

	mu        sync.Mutex
	entries   manifest.Entries
	written   int
	unchanged int
}

func newOutput(dir string, prev manifest.Entries) *output {
	return &output{
		dir:     dir,
		prev:    prev,
		entries: manifest.Entries{},
	}
}

func (o *output) write(rel string, data []byte) error {
	fp := build.Sum(data)
	dst := filepath.Join(o.dir, filepath.FromSlash(rel))

	same := o.prev[rel] == fp && fileExists(dst)
	if !same {
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return err
		}
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.entries[rel] = fp
	if same {
		o.unchanged++
	} else {
		o.written++
	}
	return nil
}

func removeOutput(dir, rel string) error {
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove stale %s: %w", rel, err)
	}
	// drop directories left empty, up to the public root
	for d := filepath.Dir(path); d != filepath.Clean(dir); d = filepath.Dir(d) {
		if os.Remove(d) != nil {
			break
		}
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
