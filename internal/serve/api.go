package serve

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"folio/internal/domain/content"
	"folio/internal/domain/cv"
	"folio/internal/resume"
)

// apiArticles lists articles, newest first. ?tag= filters on an exact tag;
// ?lang= returns them flattened to one language.
func (s *Server) apiArticles(c echo.Context) error {
	var arts []content.Article
	if tag := c.QueryParam("tag"); tag != "" {
		arts = s.repo.ListByTag(tag)
	} else {
		arts = s.repo.ListAll()
	}
	return s.articlesJSON(c, arts)
}

func (s *Server) apiFeatured(c echo.Context) error {
	return s.articlesJSON(c, s.repo.ListFeatured())
}

func (s *Server) apiArticle(c echo.Context) error {
	a, ok := s.repo.GetBySlug(c.Param("slug"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "article not found")
	}
	if q := c.QueryParam("lang"); q != "" {
		l, ok := content.ParseLang(q)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "unsupported language")
		}
		return c.JSON(http.StatusOK, a.Localize(l))
	}
	return c.JSON(http.StatusOK, a)
}

func (s *Server) apiTags(c echo.Context) error {
	return c.JSON(http.StatusOK, s.repo.ListTags())
}

func (s *Server) apiCV(c echo.Context) error {
	v, err := s.cvView(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

type skillsResponse struct {
	All        []string                      `json:"all"`
	ByCategory map[cv.SkillCategory][]string `json:"byCategory"`
}

func (s *Server) apiSkills(c echo.Context) error {
	v, err := s.cvView(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, skillsResponse{
		All:        v.AllSkills(),
		ByCategory: v.SkillsByCategory(),
	})
}

func (s *Server) cvView(c echo.Context) (*cv.View, error) {
	l, ok := content.ParseLang(c.Param("lang"))
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound, "unsupported language")
	}
	v := resume.LoadView(s.cfg.Content.CVFile, l, s.log)
	if v == nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "cv unavailable")
	}
	return v, nil
}

func (s *Server) articlesJSON(c echo.Context, arts []content.Article) error {
	q := c.QueryParam("lang")
	if q == "" {
		return c.JSON(http.StatusOK, arts)
	}
	l, ok := content.ParseLang(q)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported language")
	}
	return c.JSON(http.StatusOK, content.LocalizeAll(arts, l))
}
