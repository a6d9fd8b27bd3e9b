package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailValid(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@b.com", true},
		{"A@B.COM", true},
		{"john.doe+tag@sub.example.com", true},
		{"a@b", false},
		{"a@b.org", false},
		{"", false},
		{"@b.com", false},
		{"a b@c.com", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EmailValid(tt.email), "email %q", tt.email)
	}
}

func TestPasswordValid(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"abcd1234", true},
		{"short1", false},
		{"alllettersnodigit", false},
		{"12345678", false},
		{"Pa55word", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PasswordValid(tt.password), "password %q", tt.password)
	}
}

func TestOrganizerValid(t *testing.T) {
	assert.True(t, OrganizerValid("Attendee", ""))
	assert.True(t, OrganizerValid("Admin", ""))
	assert.True(t, OrganizerValid("Organizer", "EventCo"))
	assert.False(t, OrganizerValid("Organizer", ""))
	assert.False(t, OrganizerValid("Organizer", "   "))
}
