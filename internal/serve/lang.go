package serve

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"

	"folio/internal/domain/content"
)

const langCookie = "lang"

// supported lists the site languages in content.Langs order.
var supported = func() []language.Tag {
	tags := make([]language.Tag, 0, len(content.Langs))
	for _, l := range content.Langs {
		tags = append(tags, language.Make(string(l)))
	}
	return tags
}()

var matcher = language.NewMatcher(supported)

// preferredLang picks the language for a visitor: the lang cookie, then the
// Accept-Language header, then the site default.
func (s *Server) preferredLang(c echo.Context) content.Lang {
	if ck, err := c.Cookie(langCookie); err == nil {
		if l, ok := content.ParseLang(ck.Value); ok {
			return l
		}
	}
	if l, ok := matchAcceptLanguage(c.Request().Header.Get("Accept-Language")); ok {
		return l
	}
	return s.cfg.Site.DefaultLanguage
}

func matchAcceptLanguage(header string) (content.Lang, bool) {
	if header == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return "", false
	}
	return content.Langs[idx], true
}

// pathLang is the language of the :lang segment, or the visitor's preferred
// language when the path has none.
func (s *Server) pathLang(c echo.Context) content.Lang {
	if l, err := requestLang(c); err == nil {
		return l
	}
	return s.preferredLang(c)
}

func setLangCookie(c echo.Context, l content.Lang) {
	c.SetCookie(&http.Cookie{
		Name:     langCookie,
		Value:    string(l),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
