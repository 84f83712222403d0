package menu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPriceLine(t *testing.T) {
	tests := []struct {
		line  string
		price bool
	}{
		{"$9.85", true},
		{"12.00", true},
		{"Price: 8.50", true},
		{"12", true},
		{"12$", true},
		{"10 - 15", true},
		{"$10.50 - $15.00", true},
		{"9.85 each", true},
		{"8.50 per person", true},
		{"5 USD", true},
		{"$12.99 USD", true},
		{"3 rupees", true},
		{"$ 12.50", true}, // dominated by digits and price punctuation
		{"Bruschetta", false},
		{"Grilled Salmon 22.00", false},
		{"Two for one special", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.price, IsPriceLine(tt.line))
		})
	}
}

func TestIsDishLineRejectsPricesFirst(t *testing.T) {
	// These carry alphabetic characters, so only the price check can
	// reject them.
	assert.False(t, IsDishLine("9.85 each"))
	assert.False(t, IsDishLine("Price: 8.50"))
}

func TestIsDishLine(t *testing.T) {
	tests := []struct {
		line string
		dish bool
	}{
		{"Bruschetta", true},
		{"Grilled Salmon 22.00", true}, // price stripping happens later
		{"Pan-Seared Duck Breast", true},
		{"a", false},              // too short
		{strings.Repeat("x", 81), false}, // too long
		{"$9.85", false},          // price
		{"1.", false},             // bare numbering
		{"2)", false},             // bare numbering
		{"12345", false},          // no letters
		{"!!! *** !!!", false},    // no letters
		{"@#$% ab @#$%&*", false}, // mostly special characters
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.dish, IsDishLine(tt.line))
		})
	}
}

func TestIsDishLineSkipKeywordExactMatchOnly(t *testing.T) {
	// A reserved keyword disqualifies only when it is the whole line.
	assert.False(t, IsDishLine("vegan"))
	assert.False(t, IsDishLine("Vegan"))
	assert.False(t, IsDishLine("MENU"))
	assert.False(t, IsDishLine("Monday"))
	assert.False(t, IsDishLine("pm"))

	// Containment never disqualifies.
	assert.True(t, IsDishLine("Vegan Burger"))
	assert.True(t, IsDishLine("Coffee Rubbed Brisket"))
	assert.True(t, IsDishLine("Open Faced Sandwich"))
}
