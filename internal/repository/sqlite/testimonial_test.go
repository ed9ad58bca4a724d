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

func createTestTestimonial(t *testing.T, r *TestimonialRepo, name string, visible bool, order int) *model.Testimonial {
	t.Helper()
	tm := &model.Testimonial{
		Name:      name,
		Content:   "Great work, delivered on time.",
		Rating:    5,
		IsVisible: visible,
		Order:     order,
	}
	require.NoError(t, r.Create(context.Background(), tm))
	return tm
}

func TestTestimonialCRUD(t *testing.T) {
	r := newTestDB(t).Testimonials()
	tm := createTestTestimonial(t, r, "Ada", true, 0)

	got, err := r.GetByID(context.Background(), tm.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
	assert.True(t, got.IsVisible)

	tm.Role = "CTO"
	tm.Company = "Analytical Engines"
	tm.IsVisible = false
	require.NoError(t, r.Update(context.Background(), tm))

	got, err = r.GetByID(context.Background(), tm.ID)
	require.NoError(t, err)
	assert.Equal(t, "CTO", got.Role)
	assert.False(t, got.IsVisible)

	require.NoError(t, r.Delete(context.Background(), tm.ID))
	_, err = r.GetByID(context.Background(), tm.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestTestimonialCreate_RatingOutOfRange(t *testing.T) {
	r := newTestDB(t).Testimonials()

	err := r.Create(context.Background(), &model.Testimonial{Name: "x", Content: "long enough", Rating: 6})
	assert.Error(t, err)
}

func TestTestimonialListAndCountVisible(t *testing.T) {
	r := newTestDB(t).Testimonials()
	v1 := createTestTestimonial(t, r, "v1", true, 1)
	v0 := createTestTestimonial(t, r, "v0", true, 0)
	h0 := createTestTestimonial(t, r, "h0", false, 0)

	visible, err := r.List(context.Background(), model.TestimonialFilter{VisibleOnly: true})
	require.NoError(t, err)
	require.Len(t, visible, 2)
	assert.Equal(t, v0.ID, visible[0].ID)
	assert.Equal(t, v1.ID, visible[1].ID)

	all, err := r.List(context.Background(), model.TestimonialFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, h0.ID, all[2].ID)

	n, err := r.CountVisible(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestTestimonialPlacements_GroupByVisibility(t *testing.T) {
	r := newTestDB(t).Testimonials()
	v := createTestTestimonial(t, r, "v", true, 0)
	h := createTestTestimonial(t, r, "h", false, 0)

	items, err := r.Placements(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []resequence.Item{
		{ID: v.ID, Group: "visible", Order: 0},
		{ID: h.ID, Group: "hidden", Order: 0},
	}, items)

	// Moving into the hidden group flips the visibility column too.
	require.NoError(t, r.ApplyOrder(context.Background(), []resequence.Item{
		{ID: v.ID, Group: "hidden", Order: 1},
	}))
	got, err := r.GetByID(context.Background(), v.ID)
	require.NoError(t, err)
	assert.False(t, got.IsVisible)
	assert.Equal(t, 1, got.Order)
}
