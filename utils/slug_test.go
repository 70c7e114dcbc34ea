package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"IIT Bombay", "iit-bombay"},
		{"St. Xavier's College", "st-xavier-s-college"},
		{"  NMIMS (Mumbai)  ", "nmims-mumbai"},
		{"ABC123", "abc123"},
		{"---", ""},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Slugify(c.in), "Slugify(%q)", c.in)
	}
}

func TestFinalizeSlugEmbedsID(t *testing.T) {
	assert.Equal(t, "iit-bombay-42", FinalizeSlug("IIT Bombay", 42))
}

func TestTitleCaseNormalizesSheetInput(t *testing.T) {
	assert.Equal(t, "Iit Bombay", TitleCase("  IIT BOMBAY "))
	assert.Equal(t, "Maharashtra", TitleCase("mAhArAsHtRa"))
}
