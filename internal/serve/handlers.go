package serve

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"folio/internal/app"
	"folio/internal/domain/content"
	"folio/internal/domain/site"
)

const xmlContentType = "application/xml; charset=utf-8"

func (s *Server) handleRoot(c echo.Context) error {
	return c.Redirect(http.StatusFound, site.HomeURL(s.preferredLang(c)))
}

func (s *Server) handleSitemap(c echo.Context) error {
	return s.render(c, site.Route{Kind: site.RouteSitemap}, xmlContentType)
}

func (s *Server) handleHome(c echo.Context) error {
	return s.page(c, site.RouteHome)
}

func (s *Server) handleBlog(c echo.Context) error {
	return s.page(c, site.RouteBlog)
}

func (s *Server) handleTags(c echo.Context) error {
	return s.page(c, site.RouteTags)
}

func (s *Server) handleCV(c echo.Context) error {
	return s.page(c, site.RouteCV)
}

func (s *Server) handlePost(c echo.Context) error {
	l, err := requestLang(c)
	if err != nil {
		return err
	}
	setLangCookie(c, l)
	return s.render(c, site.Route{Kind: site.RoutePost, Lang: l, Slug: c.Param("slug")}, echo.MIMETextHTMLCharsetUTF8)
}

func (s *Server) handleTag(c echo.Context) error {
	l, err := requestLang(c)
	if err != nil {
		return err
	}
	setLangCookie(c, l)
	key, err := url.PathUnescape(c.Param("tag"))
	if err != nil {
		return echo.ErrNotFound
	}
	return s.render(c, site.Route{Kind: site.RouteTag, Lang: l, Key: key}, echo.MIMETextHTMLCharsetUTF8)
}

func (s *Server) handleFeed(c echo.Context) error {
	l, err := requestLang(c)
	if err != nil {
		return err
	}
	return s.render(c, site.Route{Kind: site.RouteFeed, Lang: l}, xmlContentType)
}

// page serves a list page that only depends on the language.
func (s *Server) page(c echo.Context, kind site.RouteKind) error {
	l, err := requestLang(c)
	if err != nil {
		return err
	}
	setLangCookie(c, l)
	return s.render(c, site.Route{Kind: kind, Lang: l}, echo.MIMETextHTMLCharsetUTF8)
}

func (s *Server) render(c echo.Context, r site.Route, contentType string) error {
	p := s.currentPages()
	body, err := p.Render(c.Request().Context(), p.Snapshot(), r)
	if errors.Is(err, app.ErrNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, contentType, body)
}

// requestLang validates the :lang segment. Any other value is a 404.
func requestLang(c echo.Context) (content.Lang, error) {
	l, ok := content.ParseLang(c.Param("lang"))
	if !ok || string(l) != c.Param("lang") {
		return "", echo.ErrNotFound
	}
	return l, nil
}
