package serve

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/labstack/echo/v4"
)

const reloadDelay = 200 * time.Millisecond

// hub fans reload events out to the connected browsers.
type hub struct {
	mu    sync.Mutex
	conns map[chan string]struct{}
}

func newHub() *hub {
	return &hub{conns: make(map[chan string]struct{})}
}

func (h *hub) subscribe() chan string {
	ch := make(chan string, 8)
	h.mu.Lock()
	h.conns[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *hub) unsubscribe(ch chan string) {
	h.mu.Lock()
	delete(h.conns, ch)
	close(ch)
	h.mu.Unlock()
}

// broadcast never blocks: a slow client misses the event.
func (h *hub) broadcast(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.conns {
		select {
		case ch <- msg:
		default:
		}
	}
}

func (h *hub) size() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (s *Server) handleSSE(c echo.Context) error {
	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	ch := s.hub.subscribe()
	defer s.hub.unsubscribe(ch)

	fmt.Fprint(w, "data: hello\n\n")
	w.Flush()

	for {
		select {
		case <-c.Request().Context().Done():
			return nil
		case msg := <-ch:
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg, msg)
			w.Flush()
		}
	}
}

func (s *Server) startWatch(ctx context.Context) error {
	var err error
	s.watchOnce.Do(func() {
		w, e := fsnotify.NewWatcher()
		if e != nil {
			err = e
			return
		}
		s.watcher = w

		dirs := []string{
			s.cfg.Content.PostsDir,
			filepath.Dir(s.cfg.Content.CVFile),
			filepath.Join(s.cfg.Build.ThemeDir, s.cfg.Site.Theme),
		}
		for _, dir := range dirs {
			if e := addTree(w, dir); e != nil {
				if errors.Is(e, fs.ErrNotExist) {
					s.log.WithField("dir", dir).Warn("watch: directory missing")
					continue
				}
				err = e
				return
			}
		}
		go s.watchLoop(ctx)
	})
	return err
}

func addTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}

func (s *Server) watchLoop(ctx context.Context) {
	s.log.Info("watching for file changes")
	debounce := time.NewTicker(time.Hour)
	debounce.Stop()

	themeDir := filepath.Clean(filepath.Join(s.cfg.Build.ThemeDir, s.cfg.Site.Theme))
	themeChanged := false

	trigger := func() {
		select {
		case <-debounce.C:
		default:
		}
		debounce.Reset(reloadDelay)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if inDir(themeDir, ev.Name) {
				themeChanged = true
			}
			trigger()
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.WithError(err).Warn("watcher error")
		case <-debounce.C:
			debounce.Stop()
			if themeChanged {
				s.reloadTheme()
				themeChanged = false
			}
			s.log.WithField("clients", s.hub.size()).Debug("reload")
			s.hub.broadcast("reload")
		}
	}
}

func inDir(dir, path string) bool {
	rel, err := filepath.Rel(dir, filepath.Clean(path))
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
