// Package cv holds the canonical bilingual CV record and its per-language view.
package cv

// Record is the single bilingual source of truth for the CV page.
// Every *Fr/*En pair is required except Subtitle and the Projects collection.
type Record struct {
	Personal   Personal `yaml:"personal" json:"personal"`
	SummaryFr  string   `yaml:"summaryFr" json:"summaryFr"`
	SummaryEn  string   `yaml:"summaryEn" json:"summaryEn"`
	SubtitleFr string   `yaml:"subtitleFr,omitempty" json:"subtitleFr,omitempty"`
	SubtitleEn string   `yaml:"subtitleEn,omitempty" json:"subtitleEn,omitempty"`

	Experiences   []Experience   `yaml:"experiences" json:"experiences"`
	Education     []Education    `yaml:"education" json:"education"`
	Languages     []Language     `yaml:"languages" json:"languages"`
	Expertise     []Expertise    `yaml:"expertise" json:"expertise"`
	Contributions []Contribution `yaml:"contributions" json:"contributions"`
	Projects      []Project      `yaml:"projects,omitempty" json:"projects,omitempty"`
	Skills        []Skill        `yaml:"skills" json:"skills"`
}

type Personal struct {
	Name       string `yaml:"name" json:"name"`
	TitleFr    string `yaml:"titleFr" json:"titleFr"`
	TitleEn    string `yaml:"titleEn" json:"titleEn"`
	LocationFr string `yaml:"locationFr" json:"locationFr"`
	LocationEn string `yaml:"locationEn" json:"locationEn"`
	Email      string `yaml:"email" json:"email"`
	Phone      string `yaml:"phone,omitempty" json:"phone,omitempty"`
	Website    string `yaml:"website,omitempty" json:"website,omitempty"`
	Github     string `yaml:"github,omitempty" json:"github,omitempty"`
	Linkedin   string `yaml:"linkedin,omitempty" json:"linkedin,omitempty"`

	// Raw calendar dates, YYYY-MM-DD.
	BirthDate       string `yaml:"birthDate" json:"birthDate"`
	ExperienceStart string `yaml:"experienceStart" json:"experienceStart"`
}

type Experience struct {
	Company       string   `yaml:"company" json:"company"`
	RoleFr        string   `yaml:"roleFr" json:"roleFr"`
	RoleEn        string   `yaml:"roleEn" json:"roleEn"`
	LocationFr    string   `yaml:"locationFr" json:"locationFr"`
	LocationEn    string   `yaml:"locationEn" json:"locationEn"`
	DescriptionFr string   `yaml:"descriptionFr" json:"descriptionFr"`
	DescriptionEn string   `yaml:"descriptionEn" json:"descriptionEn"`
	HighlightsFr  []string `yaml:"highlightsFr" json:"highlightsFr"`
	HighlightsEn  []string `yaml:"highlightsEn" json:"highlightsEn"`
	Stack         []string `yaml:"stack,omitempty" json:"stack,omitempty"`
	Start         string   `yaml:"start" json:"start"`
	End           string   `yaml:"end,omitempty" json:"end,omitempty"`
	Current       bool     `yaml:"current,omitempty" json:"current,omitempty"`
}

type Education struct {
	School        string `yaml:"school" json:"school"`
	DegreeFr      string `yaml:"degreeFr" json:"degreeFr"`
	DegreeEn      string `yaml:"degreeEn" json:"degreeEn"`
	DescriptionFr string `yaml:"descriptionFr" json:"descriptionFr"`
	DescriptionEn string `yaml:"descriptionEn" json:"descriptionEn"`
	Start         string `yaml:"start" json:"start"`
	End           string `yaml:"end,omitempty" json:"end,omitempty"`
}

type Language struct {
	NameFr  string `yaml:"nameFr" json:"nameFr"`
	NameEn  string `yaml:"nameEn" json:"nameEn"`
	LevelFr string `yaml:"levelFr" json:"levelFr"`
	LevelEn string `yaml:"levelEn" json:"levelEn"`
}

type Expertise struct {
	TitleFr       string   `yaml:"titleFr" json:"titleFr"`
	TitleEn       string   `yaml:"titleEn" json:"titleEn"`
	DescriptionFr string   `yaml:"descriptionFr" json:"descriptionFr"`
	DescriptionEn string   `yaml:"descriptionEn" json:"descriptionEn"`
	Stack         []string `yaml:"stack,omitempty" json:"stack,omitempty"`
}

type Contribution struct {
	Name          string   `yaml:"name" json:"name"`
	DescriptionFr string   `yaml:"descriptionFr" json:"descriptionFr"`
	DescriptionEn string   `yaml:"descriptionEn" json:"descriptionEn"`
	URL           string   `yaml:"url,omitempty" json:"url,omitempty"`
	Stack         []string `yaml:"stack,omitempty" json:"stack,omitempty"`
	Compact       bool     `yaml:"compact,omitempty" json:"compact,omitempty"`
}

type Project struct {
	Name          string   `yaml:"name" json:"name"`
	DescriptionFr string   `yaml:"descriptionFr" json:"descriptionFr"`
	DescriptionEn string   `yaml:"descriptionEn" json:"descriptionEn"`
	URL           string   `yaml:"url,omitempty" json:"url,omitempty"`
	Stack         []string `yaml:"stack,omitempty" json:"stack,omitempty"`
	Compact       bool     `yaml:"compact,omitempty" json:"compact,omitempty"`
}

type Skill struct {
	Name     string        `yaml:"name" json:"name"`
	Category SkillCategory `yaml:"category" json:"category"`
}
