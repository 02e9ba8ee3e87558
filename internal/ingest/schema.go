package ingest

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"folio/internal/domain/content"
	domainerr "folio/internal/domain/errors"
)

// Frontmatter keys of an article.
const (
	KeyPublishedAt = "publishedAt"
	KeyFeatured    = "featured"
	KeyTitleFr     = "titleFr"
	KeyTitleEn     = "titleEn"
	KeyExcerptFr   = "excerptFr"
	KeyExcerptEn   = "excerptEn"
	KeyTags        = "tags"
)

// articleSchema holds the coerced fields that must be present. Field names
// match the frontmatter keys so validator errors read like the source.
type articleSchema struct {
	Slug        string    `validate:"required"`
	PublishedAt time.Time `validate:"required"`
	TitleFr     string    `validate:"required"`
	TitleEn     string    `validate:"required"`
	Content     string    `validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeArticle coerces decoded frontmatter and a body into an Article. It
// reports every missing or mistyped field in one domain ValidationError.
func DecodeArticle(slug string, meta Metadata, body string) (content.Article, error) {
	var ve domainerr.ValidationError
	c := coercer{meta: meta, ve: &ve}

	a := content.Article{
		Slug:      slug,
		Featured:  c.boolean(KeyFeatured),
		TitleFr:   strings.TrimSpace(c.str(KeyTitleFr)),
		TitleEn:   strings.TrimSpace(c.str(KeyTitleEn)),
		ExcerptFr: strings.TrimSpace(c.str(KeyExcerptFr)),
		ExcerptEn: strings.TrimSpace(c.str(KeyExcerptEn)),
		Tags:      c.list(KeyTags),
		Content:   body,
	}
	if raw := strings.TrimSpace(c.str(KeyPublishedAt)); raw != "" {
		a.PublishedAt = ParseTime(raw)
		if a.PublishedAt.IsZero() {
			ve.Add(KeyPublishedAt, "unrecognized date "+quote(raw))
		}
	}

	err := validate.Struct(articleSchema{
		Slug:        a.Slug,
		PublishedAt: a.PublishedAt,
		TitleFr:     a.TitleFr,
		TitleEn:     a.TitleEn,
		Content:     strings.TrimSpace(a.Content),
	})
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if hasField(ve, schemaKey(fe.Field())) {
				continue
			}
			ve.Add(schemaKey(fe.Field()), "is required")
		}
	} else if err != nil {
		return content.Article{}, err
	}

	if ve.HasAny() {
		return content.Article{}, ve
	}
	return a, nil
}

// ParseTime accepts the date layouts used in frontmatter and returns the
// instant in UTC. Dates without a zone are UTC. An unparseable value yields
// the zero time.
func ParseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		time.RFC3339,
		time.DateOnly,
		"2006-01-02 15:04",
		time.DateTime,
	} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func schemaKey(field string) string {
	switch field {
	case "Slug":
		return "slug"
	case "PublishedAt":
		return KeyPublishedAt
	case "TitleFr":
		return KeyTitleFr
	case "TitleEn":
		return KeyTitleEn
	case "Content":
		return "content"
	}
	return field
}

func hasField(ve domainerr.ValidationError, field string) bool {
	for _, item := range ve.Items {
		if item.Field == field {
			return true
		}
	}
	return false
}

func quote(s string) string {
	return "\"" + s + "\""
}

// coercer reads typed values out of Metadata, recording a field error for
// every value of the wrong kind. Absent keys yield zero values.
type coercer struct {
	meta Metadata
	ve   *domainerr.ValidationError
}

func (c coercer) str(key string) string {
	v, ok := c.meta[key]
	if !ok {
		return ""
	}
	if v.Kind != KindString {
		c.ve.Add(key, "must be a string, got "+v.Kind.String())
		return ""
	}
	return v.Str
}

func (c coercer) boolean(key string) bool {
	v, ok := c.meta[key]
	if !ok {
		return false
	}
	if v.Kind != KindBool {
		c.ve.Add(key, "must be true or false, got "+v.Kind.String())
		return false
	}
	return v.Bool
}

// list accepts a list, or an empty scalar ("tags:" with no items).
func (c coercer) list(key string) []string {
	v, ok := c.meta[key]
	if !ok {
		return []string{}
	}
	switch {
	case v.Kind == KindList:
		out := make([]string, 0, len(v.List))
		for _, item := range v.List {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		return out
	case v.Kind == KindString && strings.TrimSpace(v.Str) == "":
		return []string{}
	default:
		c.ve.Add(key, "must be a list, got "+v.Kind.String())
		return nil
	}
}
