package cv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestView_SkillsByCategory_AllKeysPresentWhenEmpty(t *testing.T) {
	v := &View{}

	by := v.SkillsByCategory()
	assert.Len(t, by, len(SkillCategories))
	for _, c := range SkillCategories {
		skills, ok := by[c]
		assert.True(t, ok, "missing category %s", c)
		assert.NotNil(t, skills)
		assert.Empty(t, skills)
	}
	assert.Equal(t, []string{}, v.AllSkills())
}

func TestView_SkillsByCategory_GroupsInOrder(t *testing.T) {
	v := &View{Skills: []Skill{
		{Name: "Go", Category: CategoryBackend},
		{Name: "React", Category: CategoryFrontend},
		{Name: "PostgreSQL", Category: CategoryDatabase},
		{Name: "Rust", Category: CategoryBackend},
		{Name: "Knitting", Category: SkillCategory("hobby")},
	}}

	assert.Equal(t, []string{"Go", "React", "PostgreSQL", "Rust", "Knitting"}, v.AllSkills())

	by := v.SkillsByCategory()
	assert.Equal(t, []string{"Go", "Rust"}, by[CategoryBackend])
	assert.Equal(t, []string{"React"}, by[CategoryFrontend])
	assert.Empty(t, by[CategoryDevOps])
	_, ok := by[SkillCategory("hobby")]
	assert.False(t, ok)

	groups := v.SkillGroups()
	assert.Len(t, groups, len(SkillCategories))
	assert.Equal(t, CategoryFrontend, groups[0].Category)
}

func TestSkillCategory_Valid(t *testing.T) {
	assert.True(t, CategoryTooling.Valid())
	assert.False(t, SkillCategory("cooking").Valid())
}
