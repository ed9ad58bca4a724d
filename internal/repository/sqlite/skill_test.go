package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/portfolio-cms/internal/apperror"
	"github.com/sakif/portfolio-cms/internal/model"
	"github.com/sakif/portfolio-cms/internal/resequence"
)

func createTestSkill(t *testing.T, r *SkillRepo, name, category string, order int) *model.Skill {
	t.Helper()
	s := &model.Skill{Name: name, Category: category, Proficiency: 80, Order: order}
	require.NoError(t, r.Create(context.Background(), s))
	return s
}

func TestSkillCRUD(t *testing.T) {
	r := newTestDB(t).Skills()
	s := createTestSkill(t, r, "Go", model.CategoryBackend, 0)
	assert.NotEmpty(t, s.ID)

	got, err := r.GetByID(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, *s, *got)

	s.Name = "Golang"
	s.Category = "Databases"
	s.Order = 4
	s.Icon = "go.svg"
	require.NoError(t, r.Update(context.Background(), s))

	got, err = r.GetByID(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, *s, *got)

	require.NoError(t, r.Delete(context.Background(), s.ID))
	_, err = r.GetByID(context.Background(), s.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	assert.True(t, errors.Is(r.Delete(context.Background(), s.ID), apperror.ErrNotFound))
}

// The proficiency CHECK constraint is the last line behind service validation.
func TestSkillCreate_ProficiencyOutOfRange(t *testing.T) {
	r := newTestDB(t).Skills()

	err := r.Create(context.Background(), &model.Skill{Name: "x", Category: "Tools", Proficiency: 101})
	assert.Error(t, err)
}

func TestSkillList_GroupedAndFiltered(t *testing.T) {
	r := newTestDB(t).Skills()
	ts := createTestSkill(t, r, "TypeScript", model.CategoryFrontend, 1)
	react := createTestSkill(t, r, "React", model.CategoryFrontend, 0)
	docker := createTestSkill(t, r, "Docker", model.CategoryTools, 0)

	all, err := r.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{react.ID, ts.ID, docker.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	tools, err := r.List(context.Background(), model.CategoryTools)
	require.NoError(t, err)
	require.Len(t, tools, 1)
	assert.Equal(t, docker.ID, tools[0].ID)

	none, err := r.List(context.Background(), "Nope")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestSkillCategories(t *testing.T) {
	r := newTestDB(t).Skills()

	empty, err := r.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{}, empty)

	createTestSkill(t, r, "Go", model.CategoryBackend, 0)
	createTestSkill(t, r, "Rust", model.CategoryBackend, 1)
	createTestSkill(t, r, "Blender", "Modeling", 0)

	cats, err := r.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Backend", "Modeling"}, cats)
}

func TestSkillApplyOrder_MovesBetweenCategories(t *testing.T) {
	r := newTestDB(t).Skills()
	goSkill := createTestSkill(t, r, "Go", model.CategoryBackend, 0)
	node := createTestSkill(t, r, "Node", model.CategoryBackend, 1)
	react := createTestSkill(t, r, "React", model.CategoryFrontend, 0)

	require.NoError(t, r.ApplyOrder(context.Background(), []resequence.Item{
		{ID: goSkill.ID, Group: model.CategoryBackend, Order: 0},
		{ID: node.ID, Group: model.CategoryFrontend, Order: 0},
		{ID: react.ID, Group: model.CategoryFrontend, Order: 1},
	}))

	items, err := r.Placements(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []resequence.Item{
		{ID: goSkill.ID, Group: model.CategoryBackend, Order: 0},
		{ID: node.ID, Group: model.CategoryFrontend, Order: 0},
		{ID: react.ID, Group: model.CategoryFrontend, Order: 1},
	}, items)
}
