package normalize

import (
	"math"
	"strconv"
	"strings"
)

// QualityScore computes a 1-10 quality estimate from review signals.
// Base score is 5; a strong average rating, the presence of user commentary
// and a high save count each push it up, a poor rating pulls it down.
func QualityScore(rating string, hasCommentary bool, saves string) int {
	score := 5.0

	if r, err := strconv.ParseFloat(strings.TrimSpace(rating), 64); err == nil {
		switch {
		case r >= 4.5:
			score += 2
		case r >= 4.0:
			score += 1
		case r < 3.0:
			score -= 1
		}
	}

	if hasCommentary {
		score += 1
	}

	if s, err := strconv.Atoi(strings.TrimSpace(saves)); err == nil {
		switch {
		case s > 50:
			score += 1
		case s > 20:
			score += 0.5
		}
	}

	return ClampScore(int(math.Round(score)))
}

// ClampScore bounds a quality score to the valid [1,10] range.
func ClampScore(score int) int {
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}

// PopularityScore derives a non-negative popularity value from a
// comma-formatted view count and a save count. Unparsable fields contribute
// zero rather than failing the record.
func PopularityScore(views, saves string) int {
	score := 0

	viewsStr := strings.ReplaceAll(strings.TrimSpace(views), ",", "")
	if v, err := strconv.Atoi(viewsStr); err == nil {
		score += v / 1000
	}

	if s, err := strconv.Atoi(strings.TrimSpace(saves)); err == nil {
		score += s * 2
	}

	if score < 0 {
		score = 0
	}
	return score
}
