package resume

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/domain/content"
	"folio/internal/domain/cv"
	domainerr "folio/internal/domain/errors"
)

var fixture = filepath.Join("testdata", "cv.yaml")

func loadFixture(t *testing.T) *cv.Record {
	t.Helper()
	rec, err := Load(fixture)
	require.NoError(t, err)
	return rec
}

func TestLoad_Fixture(t *testing.T) {
	rec := loadFixture(t)

	assert.Equal(t, "Camille Martin", rec.Personal.Name)
	assert.Equal(t, "1990-06-15", rec.Personal.BirthDate)
	require.Len(t, rec.Experiences, 1)
	assert.Equal(t, []string{"go", "postgres"}, rec.Experiences[0].Stack)
	assert.True(t, rec.Experiences[0].Current)
	require.Len(t, rec.Projects, 1)
	assert.Len(t, rec.Skills, 4)
}

func TestDecode_UnquotedDates(t *testing.T) {
	doc := func(birth, start string) []byte {
		raw, err := os.ReadFile(fixture)
		require.NoError(t, err)
		s := strings.Replace(string(raw), "birthDate: 1990-06-15", "birthDate: "+birth, 1)
		return []byte(strings.Replace(s, "experienceStart: 2014-09-01", "experienceStart: "+start, 1))
	}
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	for _, tt := range []struct{ birth, start string }{
		{"1990-06-15", "2014-09-01"},
		{"'1990-06-15'", `"2014-09-01"`},
	} {
		rec, err := Decode(doc(tt.birth, tt.start))
		require.NoError(t, err, tt.birth)
		assert.Equal(t, "1990-06-15", rec.Personal.BirthDate)
		assert.Equal(t, "2014-09-01", rec.Personal.ExperienceStart)

		v := ProjectAt(rec, content.LangFR, now)
		require.NotNil(t, v)
		assert.Equal(t, 35, v.Personal.Age)
		assert.Equal(t, 10, v.Personal.ExperienceYears)
	}

	// a timestamp with a time of day is not a calendar date
	_, err := Decode(doc("1990-06-15T10:00:00Z", "2014-09-01"))
	var ve domainerr.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields(), "personal.birthDate")
}

func TestLoad_SiteRecord(t *testing.T) {
	rec, err := Load(filepath.Join("..", "..", "content", "cv.yaml"))
	require.NoError(t, err)
	assert.NotNil(t, Project(rec, content.LangEN))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "cv.yaml"))
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDecode_SchemaViolations(t *testing.T) {
	raw, err := os.ReadFile(fixture)
	require.NoError(t, err)

	tests := []struct {
		name  string
		edit  func(string) string
		field string
	}{
		{"missing english summary", func(s string) string {
			return strings.Replace(s, "summaryEn: I build web applications.\n", "", 1)
		}, "summaryEn"},
		{"unknown skill category", func(s string) string {
			return strings.Replace(s, "category: database", "category: cooking", 1)
		}, "skills.2.category"},
		{"bad birth date", func(s string) string {
			return strings.Replace(s, "birthDate: 1990-06-15", "birthDate: june 1990", 1)
		}, "personal.birthDate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.edit(string(raw))))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerr.ErrInvalid))

			var ve domainerr.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Contains(t, ve.Fields(), tt.field)
		})
	}
}

func TestDecode_NotYAML(t *testing.T) {
	_, err := Decode([]byte("personal: [oops"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse yaml")

	_, err = Decode(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerr.ErrInvalid))
}

func TestProjectAt_SelectsLanguage(t *testing.T) {
	rec := loadFixture(t)
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	fr := ProjectAt(rec, content.LangFR, now)
	en := ProjectAt(rec, content.LangEN, now)

	tests := []struct {
		name   string
		get    func(*cv.View) any
		fr, en any
	}{
		{"personal.title", func(v *cv.View) any { return v.Personal.Title }, "Développeuse full-stack", "Full-stack developer"},
		{"personal.location", func(v *cv.View) any { return v.Personal.Location }, "Lyon, France", "Lyon, FR"},
		{"summary", func(v *cv.View) any { return v.Summary }, "Je construis des applications web.", "I build web applications."},
		{"subtitle", func(v *cv.View) any { return v.Subtitle }, "Disponible en 2026", "Available in 2026"},
		{"experience.role", func(v *cv.View) any { return v.Experiences[0].Role }, "Ingénieure logiciel", "Software engineer"},
		{"experience.location", func(v *cv.View) any { return v.Experiences[0].Location }, "Paris, France", "Paris, FR"},
		{"experience.description", func(v *cv.View) any { return v.Experiences[0].Description }, "Plateforme de paiement.", "Payment platform."},
		{"experience.highlights", func(v *cv.View) any { return v.Experiences[0].Highlights }, []string{"Migration vers Go"}, []string{"Migration to Go"}},
		{"education.degree", func(v *cv.View) any { return v.Education[0].Degree }, "Diplôme d'ingénieur", "Engineering degree"},
		{"education.description", func(v *cv.View) any { return v.Education[0].Description }, "Informatique", "Computer science"},
		{"language.name", func(v *cv.View) any { return v.Languages[0].Name }, "Anglais", "English"},
		{"language.level", func(v *cv.View) any { return v.Languages[0].Level }, "Courant", "Fluent"},
		{"expertise.title", func(v *cv.View) any { return v.Expertise[0].Title }, "Back-end", "Backend"},
		{"expertise.description", func(v *cv.View) any { return v.Expertise[0].Description }, "Services HTTP et files de messages.", "HTTP services and message queues."},
		{"contribution.description", func(v *cv.View) any { return v.Contributions[0].Description }, "Correctifs de rendu.", "Rendering fixes."},
		{"project.description", func(v *cv.View) any { return v.Projects[0].Description }, "Ce site, blog et CV bilingues.", "This site, a bilingual blog and CV."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.fr, tt.get(fr))
			assert.Equal(t, tt.en, tt.get(en))
		})
	}

	// language independent fields are copied as is
	for _, v := range []*cv.View{fr, en} {
		assert.Equal(t, "camille@example.com", v.Personal.Email)
		assert.Equal(t, "Acme", v.Experiences[0].Company)
		assert.Equal(t, []string{"go", "postgres"}, v.Experiences[0].Stack)
		assert.Equal(t, "https://github.com/yuin/goldmark", v.Contributions[0].URL)
		require.Len(t, v.Projects, 1)
		assert.Equal(t, "folio", v.Projects[0].Name)
		assert.Equal(t, "https://github.com/camille/folio", v.Projects[0].URL)
		assert.Equal(t, []string{"go", "goldmark"}, v.Projects[0].Stack)
	}
	assert.Equal(t, content.LangFR, fr.Lang)
	assert.Equal(t, content.LangEN, en.Lang)
}

func TestProjectAt_NoFallback(t *testing.T) {
	rec := loadFixture(t)
	rec.SubtitleEn = ""
	rec.Experiences[0].HighlightsEn = nil

	en := ProjectAt(rec, content.LangEN, time.Now())
	assert.Empty(t, en.Subtitle)
	assert.Equal(t, []string{}, en.Experiences[0].Highlights)
}

func TestProjectAt_AgeAndExperience(t *testing.T) {
	rec := loadFixture(t)

	after := ProjectAt(rec, content.LangFR, time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 35, after.Personal.Age)
	assert.Equal(t, 10, after.Personal.ExperienceYears)

	before := ProjectAt(rec, content.LangFR, time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 34, before.Personal.Age)

	onDay := ProjectAt(rec, content.LangFR, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 35, onDay.Personal.Age)

	sept := ProjectAt(rec, content.LangFR, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 11, sept.Personal.ExperienceYears)
}

func TestProjectAt_EmptyCollections(t *testing.T) {
	rec := &cv.Record{Personal: cv.Personal{Name: "X", BirthDate: "not a date"}}

	v := ProjectAt(rec, content.LangEN, time.Now())
	require.NotNil(t, v)
	assert.NotNil(t, v.Projects)
	assert.Empty(t, v.Projects)
	assert.NotNil(t, v.Experiences)
	assert.Equal(t, 0, v.Personal.Age)
	assert.Equal(t, 0, v.Personal.ExperienceYears)
}

func TestProjectAt_Nil(t *testing.T) {
	assert.Nil(t, ProjectAt(nil, content.LangFR, time.Now()))
	assert.Nil(t, Project(nil, content.LangEN))
}

func TestProjectAt_Skills(t *testing.T) {
	v := ProjectAt(loadFixture(t), content.LangEN, time.Now())

	assert.Equal(t, []string{"React", "Go", "PostgreSQL", "TypeScript"}, v.AllSkills())

	by := v.SkillsByCategory()
	assert.Len(t, by, len(cv.SkillCategories))
	assert.Equal(t, []string{"React", "TypeScript"}, by[cv.CategoryFrontend])
	assert.Equal(t, []string{"Go"}, by[cv.CategoryBackend])
	assert.Equal(t, []string{}, by[cv.CategoryDevOps])
}

func TestYearsSince(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		date string
		want int
	}{
		{"2000-03-01", 25},
		{"2000-03-02", 24},
		{"2000-02-29", 25},
		{"2025-03-01", 0},
		{"2030-01-01", 0},
		{"", 0},
		{"01/03/2000", 0},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.want, YearsSince(tt.date, now))
		})
	}
}

func TestLoadView(t *testing.T) {
	log, hook := logtest.NewNullLogger()

	v := LoadView(fixture, content.LangEN, log)
	require.NotNil(t, v)
	assert.Equal(t, "Full-stack developer", v.Personal.Title)
	assert.Empty(t, hook.AllEntries())

	assert.Nil(t, LoadView(filepath.Join(t.TempDir(), "none.yaml"), content.LangEN, log))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "cv unavailable", hook.LastEntry().Message)
}
