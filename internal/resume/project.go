package resume

import (
	"time"

	"folio/internal/domain/content"
	"folio/internal/domain/cv"
)

// Project is ProjectAt evaluated now.
func Project(rec *cv.Record, lang content.Lang) *cv.View {
	return ProjectAt(rec, lang, time.Now())
}

// ProjectAt collapses every bilingual pair of rec to lang. Nothing falls back
// to the other language. Age and years of experience are computed against now.
func ProjectAt(rec *cv.Record, lang content.Lang, now time.Time) *cv.View {
	if rec == nil {
		return nil
	}
	p := rec.Personal

	v := &cv.View{
		Lang: lang,
		Personal: cv.PersonalView{
			Name:            p.Name,
			Title:           content.Pick(lang, p.TitleFr, p.TitleEn),
			Location:        content.Pick(lang, p.LocationFr, p.LocationEn),
			Email:           p.Email,
			Phone:           p.Phone,
			Website:         p.Website,
			Github:          p.Github,
			Linkedin:        p.Linkedin,
			Age:             YearsSince(p.BirthDate, now),
			ExperienceYears: YearsSince(p.ExperienceStart, now),
		},
		Summary:  content.Pick(lang, rec.SummaryFr, rec.SummaryEn),
		Subtitle: content.Pick(lang, rec.SubtitleFr, rec.SubtitleEn),

		Experiences:   make([]cv.ExperienceView, 0, len(rec.Experiences)),
		Education:     make([]cv.EducationView, 0, len(rec.Education)),
		Languages:     make([]cv.LanguageView, 0, len(rec.Languages)),
		Expertise:     make([]cv.ExpertiseView, 0, len(rec.Expertise)),
		Contributions: make([]cv.ContributionView, 0, len(rec.Contributions)),
		Projects:      make([]cv.ProjectView, 0, len(rec.Projects)),
		Skills:        append([]cv.Skill{}, rec.Skills...),
	}

	for _, e := range rec.Experiences {
		v.Experiences = append(v.Experiences, cv.ExperienceView{
			Company:     e.Company,
			Role:        content.Pick(lang, e.RoleFr, e.RoleEn),
			Location:    content.Pick(lang, e.LocationFr, e.LocationEn),
			Description: content.Pick(lang, e.DescriptionFr, e.DescriptionEn),
			Highlights:  nonNil(content.Pick(lang, e.HighlightsFr, e.HighlightsEn)),
			Stack:       e.Stack,
			Start:       e.Start,
			End:         e.End,
			Current:     e.Current,
		})
	}
	for _, e := range rec.Education {
		v.Education = append(v.Education, cv.EducationView{
			School:      e.School,
			Degree:      content.Pick(lang, e.DegreeFr, e.DegreeEn),
			Description: content.Pick(lang, e.DescriptionFr, e.DescriptionEn),
			Start:       e.Start,
			End:         e.End,
		})
	}
	for _, l := range rec.Languages {
		v.Languages = append(v.Languages, cv.LanguageView{
			Name:  content.Pick(lang, l.NameFr, l.NameEn),
			Level: content.Pick(lang, l.LevelFr, l.LevelEn),
		})
	}
	for _, e := range rec.Expertise {
		v.Expertise = append(v.Expertise, cv.ExpertiseView{
			Title:       content.Pick(lang, e.TitleFr, e.TitleEn),
			Description: content.Pick(lang, e.DescriptionFr, e.DescriptionEn),
			Stack:       e.Stack,
		})
	}
	for _, c := range rec.Contributions {
		v.Contributions = append(v.Contributions, cv.ContributionView{
			Name:        c.Name,
			Description: content.Pick(lang, c.DescriptionFr, c.DescriptionEn),
			URL:         c.URL,
			Stack:       c.Stack,
			Compact:     c.Compact,
		})
	}
	for _, p := range rec.Projects {
		v.Projects = append(v.Projects, cv.ProjectView{
			Name:        p.Name,
			Description: content.Pick(lang, p.DescriptionFr, p.DescriptionEn),
			URL:         p.URL,
			Stack:       p.Stack,
			Compact:     p.Compact,
		})
	}
	return v
}

// YearsSince returns the whole years elapsed between a YYYY-MM-DD date and
// now, minus one when the anniversary is still ahead this year. Unparseable
// dates and dates in the future give 0.
func YearsSince(date string, now time.Time) int {
	d, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return 0
	}
	years := now.Year() - d.Year()
	if now.Month() < d.Month() || (now.Month() == d.Month() && now.Day() < d.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
