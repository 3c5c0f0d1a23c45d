package service

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/artbrowse/internal/artic"
)

// FindByTitle returns the index of the artwork whose title best matches
// query. A case-insensitive substring match wins, earliest first; otherwise
// the smallest edit distance wins. ok is false for a blank query or page.
func FindByTitle(query string, artworks []artic.Artwork) (int, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || len(artworks) == 0 {
		return 0, false
	}

	for i, a := range artworks {
		if strings.Contains(strings.ToLower(a.Title), q) {
			return i, true
		}
	}

	best, bestDist := 0, -1
	for i, a := range artworks {
		d := levenshtein.ComputeDistance(q, strings.ToLower(a.Title))
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, true
}
