package utils

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Slugify lowercases a name and collapses every non-alphanumeric run into a
// single hyphen.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(name) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// FinalizeSlug embeds the generated primary key into the slug. The ID is only
// known after the insert, so callers run this as a second update in the same
// transaction.
func FinalizeSlug(name string, id uint) string {
	return fmt.Sprintf("%s-%d", Slugify(name), id)
}

// TitleCase normalizes a display name from user-supplied input, e.g. bulk
// upload sheets with inconsistent casing.
func TitleCase(name string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(name)))
}
