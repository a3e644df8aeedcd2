package examples

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for value suggestion:
// - Deterministic: repeated calls agree
// - Never returns an empty string, including for unknown names
// - Specific categories win over generic ones (ordering invariant)
// - Case-insensitive matching
// - Single-letter equality rules only match exactly

func TestSuggestValue_Categories(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"name":       `"World"`,
		"email":      `"user@example.com"`,
		"url":        `"https://example.com"`,
		"password":   `"changeme"`,
		"host":       `"localhost"`,
		"port":       "8080",
		"count":      "5",
		"radius":     "5",
		"text":       `"hello world"`,
		"is_enabled": "True",
		"verbose":    "True",
		"items":      "[1, 2, 3]",
		"id":         "123",
		"a":          "10",
		"n":          "10",
		"blorp":      "42", // no rule matches, generic fallback
	}

	for param, want := range cases {
		assert.Equal(t, want, SuggestValue(param), "param %q", param)
	}
}

func TestSuggestValue_OrderingInvariants(t *testing.T) {
	t.Parallel()

	// "filename" contains both "file" and "name": the path rule wins.
	assert.Equal(t, `"/tmp/example.txt"`, SuggestValue("filename"))

	// "api_key" must hit the credential rule before the bare "key" rule.
	assert.Equal(t, `"sk-example-token"`, SuggestValue("api_key"))
	assert.Equal(t, `"my-key"`, SuggestValue("cache_key"))

	// "user_id" contains "user"; the name-ish rule precedes the id rule.
	assert.Equal(t, `"World"`, SuggestValue("username"))

	// "timeout" contains "time": the date/time rule precedes numerics.
	assert.Equal(t, `"2024-01-01"`, SuggestValue("timestamp"))
}

func TestSuggestValue_CaseInsensitive(t *testing.T) {
	t.Parallel()

	assert.Equal(t, SuggestValue("NAME"), SuggestValue("name"))
	assert.Equal(t, SuggestValue("Email_Address"), SuggestValue("email_address"))
}

func TestSuggestValue_SingleLetterEquality(t *testing.T) {
	t.Parallel()

	// "x" matches the equality rule but "xs" must not.
	assert.Equal(t, "10", SuggestValue("x"))
	assert.NotEqual(t, "10", SuggestValue("xs"))
}

func TestSuggestValue_Deterministic(t *testing.T) {
	t.Parallel()

	params := []string{"name", "email", "count", "blorp", "", "x", "API_KEY"}
	for _, p := range params {
		first := SuggestValue(p)
		assert.NotEmpty(t, first)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, SuggestValue(p))
		}
	}
}
