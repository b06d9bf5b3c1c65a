package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toolm8/toolm8/internal/entities"
)

func TestPricingType(t *testing.T) {
	tests := []struct {
		input    string
		expected entities.PricingType
	}{
		{"100% free", entities.PricingTypeFree},
		{"Free", entities.PricingTypeFree},
		{"Free + from $20/mo", entities.PricingTypeFreemium},
		{"14 day free trial", entities.PricingTypeFreemium},
		{"From $10/mo", entities.PricingTypePaid},
		{"$49/mo", entities.PricingTypePaid},
		{"one-time purchase of $99", entities.PricingTypeOneTime},
		{"Buy once, use forever", entities.PricingTypeOneTime},
		{"contact sales", entities.PricingTypeNone},
		{"", entities.PricingTypeNone},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, PricingType(tt.input))
		})
	}
}

func TestPriceRange(t *testing.T) {
	assert.Equal(t, "$20/month", PriceRange("Free + from $20/mo"))
	assert.Equal(t, "$10/month", PriceRange("from $10/mo"))
	assert.Equal(t, "$99", PriceRange("from $99"))
	assert.Equal(t, "", PriceRange(""))
}

func TestHasFreeTrial(t *testing.T) {
	assert.True(t, HasFreeTrial("Free + from $20/mo"))
	assert.True(t, HasFreeTrial("7-day Trial"))
	assert.False(t, HasFreeTrial("$50/mo"))
	assert.False(t, HasFreeTrial(""))
}
