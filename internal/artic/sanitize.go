package artic

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// cleanText strips markup and terminal control sequences from a display field.
// Newlines and tabs collapse to single spaces so a value fits one table cell.
func cleanText(s string) string {
	if s == "" {
		return s
	}
	s = html.UnescapeString(strictPolicy.Sanitize(s))
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// Clean returns a copy of a with every string field passed through cleanText.
func (a Artwork) Clean() Artwork {
	a.Title = cleanText(a.Title)
	a.PlaceOfOrigin = cleanText(a.PlaceOfOrigin)
	a.ArtistDisplay = cleanText(a.ArtistDisplay)
	a.Inscriptions = cleanText(a.Inscriptions)
	return a
}
