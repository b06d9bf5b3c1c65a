package normalize

import (
	"regexp"
	"strings"

	"github.com/toolm8/toolm8/internal/entities"
)

var (
	priceFromPrefix = regexp.MustCompile(`(?i)^(Free \+ )?from \$`)
	priceMoSuffix   = regexp.MustCompile(`/mo$`)
)

// PricingType classifies raw pricing text into the closed pricing enumeration.
// Matches are evaluated in priority order; anything unrecognized maps to
// no-pricing rather than passing through an arbitrary string.
func PricingType(pricing string) entities.PricingType {
	text := strings.ToLower(strings.TrimSpace(pricing))
	if text == "" {
		return entities.PricingTypeNone
	}

	switch {
	case strings.Contains(text, "100% free") || text == "free":
		return entities.PricingTypeFree
	case strings.Contains(text, "free +") || strings.Contains(text, "free trial"):
		return entities.PricingTypeFreemium
	case strings.Contains(text, "from $") || strings.Contains(text, "/mo"):
		return entities.PricingTypePaid
	case strings.Contains(text, "one-time") || strings.Contains(text, "buy once"):
		return entities.PricingTypeOneTime
	default:
		return entities.PricingTypeNone
	}
}

// PriceRange normalizes raw pricing text into a human-readable range,
// e.g. "Free + from $20/mo" becomes "$20/month".
func PriceRange(pricing string) string {
	text := strings.TrimSpace(pricing)
	if text == "" {
		return ""
	}
	text = priceFromPrefix.ReplaceAllString(text, "$$")
	text = priceMoSuffix.ReplaceAllString(text, "/month")
	return text
}

// HasFreeTrial reports whether pricing text suggests any free tier or trial.
func HasFreeTrial(pricing string) bool {
	text := strings.ToLower(pricing)
	return strings.Contains(text, "free") || strings.Contains(text, "trial")
}
