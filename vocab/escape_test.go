package vocab

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestEscape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		token    string
		expected string
	}{
		{name: "space", token: " ", expected: `\u0020`},
		{name: "tab", token: "\t", expected: `\u0009`},
		{name: "newline", token: "\n", expected: `\u000a`},
		{name: "mixed", token: "a b\tc", expected: `a\u0020b\u0009c`},
		{name: "no-break space", token: "\u00a0", expected: `\u00a0`},
		{name: "ideographic space", token: "\u3000", expected: `\u3000`},
		{name: "unit separator", token: "\x1f", expected: `\u001f`},
		{name: "non-ASCII letters pass through", token: "привет", expected: "привет"},
		{name: "plain", token: "word", expected: "word"},
		{name: "empty", token: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Escape(tt.token))
			assert.Equal(t, tt.token, Unescape(tt.expected))
		})
	}
}

func TestUnescape_IgnoresIncompleteSequences(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `\u12`, Unescape(`\u12`))
	assert.Equal(t, `\uzzzz`, Unescape(`\uzzzz`))
	assert.Equal(t, `a\`, Unescape(`a\`))
	assert.Equal(t, "Aé", Unescape(`\u0041\u00e9`))
}

// Feature: text vocabulary format
// Escaped tokens never contain whitespace, and unescaping restores any
// token that has no literal backslash.
func TestProperty_EscapeRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	noBackslash := gen.AnyString().SuchThat(func(s string) bool {
		return utf8.ValidString(s) && !strings.ContainsRune(s, '\\')
	})

	properties.Property("unescape inverts escape", prop.ForAll(
		func(token string) bool {
			return Unescape(Escape(token)) == token
		},
		noBackslash,
	))

	properties.Property("escaped tokens contain no whitespace", prop.ForAll(
		func(token string) bool {
			return strings.IndexFunc(Escape(token), IsSpace) < 0
		},
		noBackslash,
	))

	properties.TestingRun(t)
}
