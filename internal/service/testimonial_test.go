package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/portfolio-cms/internal/apperror"
	"github.com/sakif/portfolio-cms/internal/model"
)

func validTestimonial(name string, visible bool) TestimonialInput {
	return TestimonialInput{
		Name:      ptr(name),
		Content:   ptr("Working together was a pleasure."),
		Rating:    ptr(5),
		IsVisible: ptr(visible),
	}
}

// fillVisible creates n visible testimonials.
func fillVisible(t *testing.T, svc *TestimonialService, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := svc.Create(context.Background(), validTestimonial(fmt.Sprintf("client %d", i), true))
		require.NoError(t, err)
	}
}

func TestTestimonialCreate_Validation(t *testing.T) {
	svc := NewTestimonialService(newTestDB(t).Testimonials(), testLogger())

	tests := []struct {
		name  string
		edit  func(*TestimonialInput)
		field string
	}{
		{"short content", func(in *TestimonialInput) { in.Content = ptr("too short") }, "content"},
		{"rating zero", func(in *TestimonialInput) { in.Rating = ptr(0) }, "rating"},
		{"rating six", func(in *TestimonialInput) { in.Rating = ptr(6) }, "rating"},
		{"missing rating", func(in *TestimonialInput) { in.Rating = nil }, "rating"},
		{"bad avatar", func(in *TestimonialInput) { in.AvatarURL = ptr("javascript:alert(1)") }, "avatarUrl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validTestimonial("Ada", true)
			tt.edit(&in)
			_, err := svc.Create(context.Background(), in)
			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr), "got %v", err)
			assert.Equal(t, tt.field, appErr.Field)
		})
	}
}

func TestTestimonialCreate_DefaultsVisible(t *testing.T) {
	svc := NewTestimonialService(newTestDB(t).Testimonials(), testLogger())

	in := validTestimonial("Ada", true)
	in.IsVisible = nil
	tm, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, tm.IsVisible)
}

func TestTestimonialCreate_CapacityExceeded(t *testing.T) {
	svc := NewTestimonialService(newTestDB(t).Testimonials(), testLogger())
	fillVisible(t, svc, model.MaxVisibleTestimonials)

	_, err := svc.Create(context.Background(), validTestimonial("one too many", true))
	assert.True(t, errors.Is(err, apperror.ErrCapacity))

	// Hidden testimonials are not capped.
	_, err = svc.Create(context.Background(), validTestimonial("hidden", false))
	assert.NoError(t, err)

	all, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, model.MaxVisibleTestimonials+1)
}

// The 21st testimonial cannot be made visible and stays exactly as it was.
func TestTestimonialUpdate_CapacityLeavesRowUnchanged(t *testing.T) {
	svc := NewTestimonialService(newTestDB(t).Testimonials(), testLogger())
	fillVisible(t, svc, model.MaxVisibleTestimonials)
	hidden, err := svc.Create(context.Background(), validTestimonial("twenty-first", false))
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), hidden.ID, TestimonialInput{
		IsVisible: ptr(true),
		Name:      ptr("renamed"),
	})
	require.True(t, errors.Is(err, apperror.ErrCapacity))

	got, err := svc.Get(context.Background(), hidden.ID)
	require.NoError(t, err)
	assert.False(t, got.IsVisible)
	assert.Equal(t, "twenty-first", got.Name)
	assert.Equal(t, hidden.Order, got.Order)

	// Updating an already-visible testimonial at the cap is fine.
	visible, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	_, err = svc.Update(context.Background(), visible[0].ID, TestimonialInput{Rating: ptr(4)})
	assert.NoError(t, err)
}

func TestTestimonialUpdate_VisibilityMovesBetweenGroups(t *testing.T) {
	svc := NewTestimonialService(newTestDB(t).Testimonials(), testLogger())
	a, _ := svc.Create(context.Background(), validTestimonial("a", true))
	b, _ := svc.Create(context.Background(), validTestimonial("b", true))
	h, _ := svc.Create(context.Background(), validTestimonial("h", false))

	moved, err := svc.Update(context.Background(), a.ID, TestimonialInput{IsVisible: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, 1, moved.Order, "appended after the existing hidden testimonial")

	gotB, err := svc.Get(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, gotB.Order, "visible group is compacted")

	gotH, err := svc.Get(context.Background(), h.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, gotH.Order)
}

func TestTestimonialReorder_WithinGroup(t *testing.T) {
	svc := NewTestimonialService(newTestDB(t).Testimonials(), testLogger())
	a, _ := svc.Create(context.Background(), validTestimonial("a", true))
	b, _ := svc.Create(context.Background(), validTestimonial("b", true))
	h, _ := svc.Create(context.Background(), validTestimonial("h", false))

	require.NoError(t, svc.Reorder(context.Background(), []OrderEntry{{ID: b.ID, Order: ptr(0)}}))

	visible, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, visible, 2)
	assert.Equal(t, b.ID, visible[0].ID)
	assert.Equal(t, a.ID, visible[1].ID)

	gotH, err := svc.Get(context.Background(), h.ID)
	require.NoError(t, err)
	assert.False(t, gotH.IsVisible, "reorder never changes visibility")
}
