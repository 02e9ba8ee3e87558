package cv

// SkillCategory is a closed set. Views always expose every category, even
// when no skill belongs to it.
type SkillCategory string

const (
	CategoryFrontend SkillCategory = "frontend"
	CategoryBackend  SkillCategory = "backend"
	CategoryDatabase SkillCategory = "database"
	CategoryDevOps   SkillCategory = "devops"
	CategoryTooling  SkillCategory = "tooling"
	CategoryOther    SkillCategory = "other"
)

// SkillCategories is the display order of the categories.
var SkillCategories = []SkillCategory{
	CategoryFrontend,
	CategoryBackend,
	CategoryDatabase,
	CategoryDevOps,
	CategoryTooling,
	CategoryOther,
}

func (c SkillCategory) Valid() bool {
	for _, k := range SkillCategories {
		if k == c {
			return true
		}
	}
	return false
}
