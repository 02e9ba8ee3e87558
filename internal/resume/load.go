// Package resume loads the bilingual CV record and projects it onto one
// language for the CV page and the API.
package resume

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"folio/internal/domain/content"
	"folio/internal/domain/cv"
	domainerr "folio/internal/domain/errors"
)

//go:embed schema/cv.schema.json
var schemaJSON string

var recordSchema = mustSchema(schemaJSON)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("resume: bad embedded schema: %v", err))
	}
	return s
}

// LoadError reports a CV file that could not be read or does not match the
// record schema.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load cv %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads the CV record at path and checks it against the embedded schema
// before decoding. Schema failures unwrap to a domain ValidationError.
func Load(path string) (*cv.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	rec, err := Decode(data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return rec, nil
}

// Decode validates and decodes a YAML CV document.
func Decode(data []byte) (*cv.Record, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	doc = scalarDates(doc)

	res, err := recordSchema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	if !res.Valid() {
		var ve domainerr.ValidationError
		for _, desc := range res.Errors() {
			ve.Add(errorField(desc), desc.Description())
		}
		return nil, ve
	}

	var rec cv.Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &rec, nil
}

// scalarDates turns the timestamps yaml resolves from unquoted dates back
// into their written form, so the schema sees strings as the record does.
func scalarDates(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			x[k] = scalarDates(e)
		}
	case []any:
		for i, e := range x {
			x[i] = scalarDates(e)
		}
	case time.Time:
		h, m, sec := x.Clock()
		if h == 0 && m == 0 && sec == 0 && x.Nanosecond() == 0 && x.Location() == time.UTC {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.RFC3339)
	}
	return v
}

// LoadView loads the record and projects it. It returns nil, after logging,
// when the record is unavailable; pages then render without a CV section.
func LoadView(path string, lang content.Lang, log logrus.FieldLogger) *cv.View {
	if log == nil {
		log = logrus.StandardLogger()
	}
	rec, err := Load(path)
	if err != nil {
		log.WithError(err).WithField("path", path).Warn("cv unavailable")
		return nil
	}
	return Project(rec, lang)
}

// errorField names the offending property. Required errors are reported on
// the parent object, so the missing key is appended.
func errorField(desc gojsonschema.ResultError) string {
	field := desc.Field()
	if desc.Type() != "required" {
		return field
	}
	prop, _ := desc.Details()["property"].(string)
	switch {
	case prop == "":
		return field
	case field == "(root)":
		return prop
	default:
		return field + "." + prop
	}
}
