package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"folio/internal/app"
	"folio/internal/domain/config"
	"folio/internal/ingest"
	"folio/internal/render"
)

// Server is the development server. It keeps no content in memory: every
// request reads the posts directory and the CV file again.
type Server struct {
	cfg  config.Config
	log  logrus.FieldLogger
	repo *ingest.Repository
	echo *echo.Echo
	hub  *hub

	mu    sync.RWMutex
	pages app.Pages

	watcher   *fsnotify.Watcher
	watchOnce sync.Once
}

func New(cfg config.Config, log logrus.FieldLogger) (*Server, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("component", "serve")

	tpl, err := render.NewTemplateRenderer(cfg.Build.ThemeDir, cfg.Site.Theme)
	if err != nil {
		return nil, fmt.Errorf("serve: load theme: %w", err)
	}
	repo := ingest.NewRepository(cfg.Content, log)
	pages := app.NewPages(cfg, repo, tpl, log)
	pages.LiveReload = cfg.Serve.Watch

	s := &Server{
		cfg:   cfg,
		log:   log,
		repo:  repo,
		echo:  echo.New(),
		hub:   newHub(),
		pages: *pages,
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func (s *Server) Handler() http.Handler { return s.echo }

func (s *Server) Close() error {
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s.cfg.Serve.Watch {
		// 启动文件监控
		if err := s.startWatch(ctx); err != nil {
			return err
		}
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.echo.Shutdown(shutdownCtx)
	}()

	s.log.WithField("addr", s.cfg.Serve.Addr).Info("listening")
	if err := s.echo.Start(s.cfg.Serve.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// currentPages returns a copy of the page renderer, so a theme reload does
// not race with requests in flight.
func (s *Server) currentPages() *app.Pages {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.pages
	return &p
}

func (s *Server) reloadTheme() {
	tpl, err := render.NewTemplateRenderer(s.cfg.Build.ThemeDir, s.cfg.Site.Theme)
	if err != nil {
		s.log.WithError(err).Warn("theme reload failed, keeping previous templates")
		return
	}
	s.mu.Lock()
	s.pages.Tpl = tpl
	s.mu.Unlock()
}

func (s *Server) setupMiddleware() {
	e := s.echo
	e.HTTPErrorHandler = s.httpErrorHandler

	e.Pre(middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		RedirectCode: http.StatusMovedPermanently,
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return strings.HasPrefix(p, "/api/") ||
				strings.HasPrefix(p, "/dev/") ||
				path.Ext(p) != ""
		},
	}))

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.log.WithFields(logrus.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.String(),
			}).Debug("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/dev/events"
		},
	}))
}

func (s *Server) setupRoutes() {
	e := s.echo

	// registered first: Static also claims "/", which handleRoot takes back
	e.Static("/", filepath.Join(s.cfg.Build.ThemeDir, s.cfg.Site.Theme, "static"))

	e.GET("/", s.handleRoot)
	e.GET("/sitemap.xml", s.handleSitemap)
	e.GET("/dev/events", s.handleSSE)

	api := e.Group("/api")
	api.GET("/articles", s.apiArticles)
	api.GET("/articles/featured", s.apiFeatured)
	api.GET("/articles/:slug", s.apiArticle)
	api.GET("/tags", s.apiTags)
	api.GET("/cv/:lang", s.apiCV)
	api.GET("/cv/:lang/skills", s.apiSkills)

	e.GET("/:lang/", s.handleHome)
	e.GET("/:lang/blog/", s.handleBlog)
	e.GET("/:lang/blog/:slug/", s.handlePost)
	e.GET("/:lang/tags/", s.handleTags)
	e.GET("/:lang/tags/:tag/", s.handleTag)
	e.GET("/:lang/cv/", s.handleCV)
	e.GET("/:lang/feed.xml", s.handleFeed)
}

func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
	}
	if code >= 500 {
		s.log.WithError(err).WithField("uri", c.Request().RequestURI).Error("server error")
	}

	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		msg := http.StatusText(code)
		if he != nil {
			if m, ok := he.Message.(string); ok {
				msg = m
			}
		}
		_ = c.JSON(code, map[string]string{"error": msg})
		return
	}
	if code == http.StatusNotFound {
		p := s.currentPages()
		body, rerr := p.NotFound(c.Request().Context(), s.pathLang(c), c.Request().URL.Path)
		if rerr == nil {
			_ = c.HTMLBlob(http.StatusNotFound, body)
			return
		}
		s.log.WithError(rerr).Warn("render 404 page")
	}
	s.echo.DefaultHTTPErrorHandler(err, c)
}
