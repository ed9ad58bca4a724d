package service

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sakif/portfolio-cms/internal/apperror"
)

// Field limits.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 5000
	MaxTechnologies      = 30
	MaxTechnologyLength  = 50
	MaxNameLength        = 100
	MaxCategoryLength    = 50
	MaxRoleLength        = 100
	MinTestimonialLength = 10
	MaxTestimonialLength = 1000
	MinContactNameLength = 2
	MaxSubjectLength     = 200
	MinMessageLength     = 10
	MaxMessageLength     = 1000
	MaxBioLength         = 5000
	MaxPhoneLength       = 50
	MaxLocationLength    = 100
)

// text trims value and checks its length in characters.
func text(field, label, value string, min, max int) (string, error) {
	value = strings.TrimSpace(value)
	n := utf8.RuneCountInString(value)
	switch {
	case n == 0 && min > 0:
		return "", apperror.ValidationFailed(field, label+" is required")
	case n < min:
		return "", apperror.ValidationFailed(field,
			fmt.Sprintf("%s must be at least %d characters", label, min))
	case n > max:
		return "", apperror.ValidationFailed(field,
			fmt.Sprintf("%s must be %d characters or less", label, max))
	}
	return value, nil
}

// optionalURL accepts "" or an absolute http(s) URL.
func optionalURL(field, label, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", apperror.ValidationFailed(field, label+" must be a valid http(s) URL")
	}
	return value, nil
}

// email accepts a bare RFC 5322 address such as "a@b.example".
func email(field, value string, required bool) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" && !required {
		return "", nil
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || !strings.Contains(value[strings.LastIndex(value, "@"):], ".") {
		return "", apperror.ValidationFailed(field, "Please provide a valid email address")
	}
	return value, nil
}

func intRange(field, label string, v, min, max int) error {
	if v < min || v > max {
		return apperror.ValidationFailed(field,
			fmt.Sprintf("%s must be between %d and %d", label, min, max))
	}
	return nil
}

func nonNegative(field, label string, v int) error {
	if v < 0 {
		return apperror.ValidationFailed(field, label+" must be zero or greater")
	}
	return nil
}

// lettersAndSpaces reports whether s holds only letters and spaces.
func lettersAndSpaces(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && r != ' ' {
			return false
		}
	}
	return true
}

func oneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// derefString returns *p, or fallback when p is nil.
func derefString(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}
