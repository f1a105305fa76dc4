package catalogs

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

func suggestLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// Suggest returns the closest known item id to an unknown one, if any is
// near enough to be a likely typo.
func (c *Catalogs) Suggest(id string) (string, bool) {
	token := strings.ToLower(strings.TrimSpace(id))
	if token == "" {
		return "", false
	}
	best := ""
	bestDist := -1
	for _, cand := range c.Items.Palette {
		if cand == token {
			return cand, true
		}
		d := levenshtein.ComputeDistance(token, cand)
		if d > suggestLimit(len(cand)) {
			continue
		}
		// palette is sorted, so ties keep the alphabetically first id
		if bestDist < 0 || d < bestDist {
			best, bestDist = cand, d
		}
	}
	return best, bestDist >= 0
}

// UnknownItemMessage formats a rejection for an id that is not in the catalog.
func (c *Catalogs) UnknownItemMessage(id string) string {
	if s, ok := c.Suggest(id); ok {
		return "unknown item " + id + " (did you mean " + s + "?)"
	}
	return "unknown item " + id
}
