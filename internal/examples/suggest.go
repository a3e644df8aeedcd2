package examples

import "strings"

// matchKind selects how a suggestion rule compares against a parameter name.
type matchKind int

const (
	matchContains matchKind = iota
	matchEquals
	matchPrefix
)

// suggestion pairs a name pattern with the Python literal to suggest.
type suggestion struct {
	kind     matchKind
	patterns []string
	value    string
}

// suggestionTable is checked top to bottom and the first match wins.
// Earlier entries intentionally shadow the generic ones below them, so the
// order is load-bearing: "filename" must hit the path rule before the name
// rule, "api_key" must hit the credential rule before the bare "key" rule.
var suggestionTable = []suggestion{
	{matchContains, []string{"email", "e_mail"}, `"user@example.com"`},
	{matchContains, []string{"url", "uri", "link"}, `"https://example.com"`},
	{matchContains, []string{"path", "file", "dir", "folder"}, `"/tmp/example.txt"`},
	{matchContains, []string{"api_key", "apikey", "token", "secret"}, `"sk-example-token"`},
	{matchContains, []string{"password", "passwd"}, `"changeme"`},
	{matchContains, []string{"host"}, `"localhost"`},
	{matchContains, []string{"port"}, "8080"},
	{matchContains, []string{"date", "time"}, `"2024-01-01"`},
	{matchContains, []string{"name", "user", "author"}, `"World"`},
	{matchContains, []string{"text", "string", "word", "message", "msg"}, `"hello world"`},
	{matchPrefix, []string{"is_", "has_", "should_"}, "True"},
	{matchContains, []string{"flag", "enable", "verbose", "debug"}, "True"},
	{matchContains, []string{"count", "num", "size", "length", "limit", "index", "radius", "width", "height", "age"}, "5"},
	{matchContains, []string{"data", "items", "values"}, "[1, 2, 3]"},
	{matchContains, []string{"key"}, `"my-key"`},
	{matchContains, []string{"id"}, "123"},
	{matchEquals, []string{"a", "b", "x", "y", "n", "i", "j", "k"}, "10"},
}

// SuggestValue maps a parameter name to a plausible Python literal for use
// in a generated call. It is deterministic and never returns an empty
// string; names that match no rule fall back to a generic placeholder.
func SuggestValue(param string) string {
	lower := strings.ToLower(param)
	for _, s := range suggestionTable {
		if s.matches(lower) {
			return s.value
		}
	}
	return "42"
}

func (s suggestion) matches(lower string) bool {
	for _, p := range s.patterns {
		switch s.kind {
		case matchContains:
			if strings.Contains(lower, p) {
				return true
			}
		case matchEquals:
			if lower == p {
				return true
			}
		case matchPrefix:
			if strings.HasPrefix(lower, p) {
				return true
			}
		}
	}
	return false
}
