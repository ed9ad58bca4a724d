package model

import "time"

// MaxVisibleTestimonials caps how many testimonials the public site shows.
const MaxVisibleTestimonials = 20

// Testimonial is a client quote. Order is a dense rank within its
// visibility group: visible testimonials are ranked among themselves.
type Testimonial struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role,omitempty"`
	Company   string    `json:"company,omitempty"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	IsVisible bool      `json:"isVisible"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
}

// TestimonialFilter narrows listings. VisibleOnly is what the public site uses.
type TestimonialFilter struct {
	VisibleOnly bool
}

// VisibilityGroup is the resequencing group a testimonial belongs to.
func (t Testimonial) VisibilityGroup() string {
	if t.IsVisible {
		return "visible"
	}
	return "hidden"
}
