package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywords(t *testing.T) {
	assert.Contains(t, CalciteKeywords, "ARRAY")
	assert.Contains(t, SupersetKeywords, "__timestamp")
	assert.True(t, IsKeyword("order"))
	assert.True(t, IsKeyword("__TIMESTAMP"))
	assert.False(t, IsKeyword("some_column"))
}

func TestQuoteIdentifier(t *testing.T) {
	cases := map[string]string{
		"some_column": "some_column",
		"order":       `"order"`,
		"ORDER":       `"ORDER"`,
		"__timestamp": `"__timestamp"`,
		"MixedCase":   `"MixedCase"`,
		"with space":  `"with space"`,
		"1st":         `"1st"`,
		`say "hi"`:    `"say ""hi"""`,
		"price$usd":   "price$usd",
	}
	for ident, expected := range cases {
		assert.Equal(t, expected, QuoteIdentifier(ident), ident)
	}
}

func TestQuoteIdentifiers(t *testing.T) {
	assert.Equal(t, `some_table."order"`, QuoteIdentifiers("some_table", "order"))
}
