package cv

import "folio/internal/domain/content"

// View is a Record projected onto one language.
type View struct {
	Lang     content.Lang `json:"lang"`
	Personal PersonalView `json:"personal"`
	Summary  string       `json:"summary"`
	Subtitle string       `json:"subtitle,omitempty"`

	Experiences   []ExperienceView   `json:"experiences"`
	Education     []EducationView    `json:"education"`
	Languages     []LanguageView     `json:"languages"`
	Expertise     []ExpertiseView    `json:"expertise"`
	Contributions []ContributionView `json:"contributions"`
	Projects      []ProjectView      `json:"projects"`
	Skills        []Skill            `json:"skills"`
}

type PersonalView struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Location string `json:"location"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Website  string `json:"website,omitempty"`
	Github   string `json:"github,omitempty"`
	Linkedin string `json:"linkedin,omitempty"`

	Age             int `json:"age"`
	ExperienceYears int `json:"experienceYears"`
}

type ExperienceView struct {
	Company     string   `json:"company"`
	Role        string   `json:"role"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Highlights  []string `json:"highlights"`
	Stack       []string `json:"stack,omitempty"`
	Start       string   `json:"start"`
	End         string   `json:"end,omitempty"`
	Current     bool     `json:"current"`
}

type EducationView struct {
	School      string `json:"school"`
	Degree      string `json:"degree"`
	Description string `json:"description"`
	Start       string `json:"start"`
	End         string `json:"end,omitempty"`
}

type LanguageView struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

type ExpertiseView struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Stack       []string `json:"stack,omitempty"`
}

type ContributionView struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	URL         string   `json:"url,omitempty"`
	Stack       []string `json:"stack,omitempty"`
	Compact     bool     `json:"compact"`
}

type ProjectView struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	URL         string   `json:"url,omitempty"`
	Stack       []string `json:"stack,omitempty"`
	Compact     bool     `json:"compact"`
}

// AllSkills returns skill names in canonical order.
func (v *View) AllSkills() []string {
	out := make([]string, 0, len(v.Skills))
	for _, s := range v.Skills {
		out = append(out, s.Name)
	}
	return out
}

// SkillsByCategory groups skill names by category. Every known category is a
// key; skills with an unknown category are left out.
func (v *View) SkillsByCategory() map[SkillCategory][]string {
	out := make(map[SkillCategory][]string, len(SkillCategories))
	for _, c := range SkillCategories {
		out[c] = []string{}
	}
	for _, s := range v.Skills {
		if _, ok := out[s.Category]; !ok {
			continue
		}
		out[s.Category] = append(out[s.Category], s.Name)
	}
	return out
}

// SkillGroup is one category with its skills, for ordered rendering.
type SkillGroup struct {
	Category SkillCategory
	Skills   []string
}

func (v *View) SkillGroups() []SkillGroup {
	by := v.SkillsByCategory()
	out := make([]SkillGroup, 0, len(SkillCategories))
	for _, c := range SkillCategories {
		out = append(out, SkillGroup{Category: c, Skills: by[c]})
	}
	return out
}
