package sqlgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEscapeValueInjection verifies that hostile string values cannot
// terminate the enclosing literal early.
func TestEscapeValueInjection(t *testing.T) {
	g := &PostgresGenerator{}

	attempts := []struct {
		name  string
		value string
	}{
		{"quote breakout", "x'; DROP TABLE books; --"},
		{"OR 1=1", "x' OR '1'='1"},
		{"trailing quote", "x'"},
		{"leading quote", "'x"},
		{"only quotes", "'''"},
		{"trailing backslash", `x\`},
		{"backslash quote", `x\'`},
		{"stacked statements", "x'; DELETE FROM books WHERE 'a'='a"},
		{"unicode quote", "x' OR 1=1"},
	}

	for _, attempt := range attempts {
		t.Run(attempt.name, func(t *testing.T) {
			escaped, err := g.EscapeValue(attempt.value)
			require.NoError(t, err)

			require.True(t, strings.HasPrefix(escaped, "E'"))
			require.True(t, strings.HasSuffix(escaped, "'"))

			// Inside the literal every quote must be preceded by an odd
			// run of backslashes, otherwise it would end the literal.
			body := escaped[2 : len(escaped)-1]
			assert.Equal(t, attempt.value, unescapeExtended(t, body))
		})
	}
}

// unescapeExtended undoes extended-literal escaping the way the backend
// would, failing the test on a bare quote inside the body.
func unescapeExtended(t *testing.T, body string) string {
	t.Helper()

	var out strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\'' {
			t.Fatalf("unescaped quote terminates literal early in %q", body)
		}
		if c == '\\' {
			require.Less(t, i+1, len(body), "dangling backslash in %q", body)
			i++
			out.WriteByte(body[i])
			continue
		}
		out.WriteByte(c)
	}
	return out.String()
}

// TestEscapeIdentifierInjection verifies hostile identifiers stay inside
// their quoting.
func TestEscapeIdentifierInjection(t *testing.T) {
	g := &PostgresGenerator{}

	attempts := []string{
		`books"; DROP TABLE books; --`,
		`t" FROM passwords --`,
		`a""b`,
	}

	for _, attempt := range attempts {
		t.Run(attempt, func(t *testing.T) {
			escaped := g.EscapeIdentifier(attempt)
			// double quotes inside a segment are rewritten, so the only
			// double quotes left are the wrapping ones
			for _, segment := range strings.Split(escaped, ".") {
				assert.Equal(t, 2, strings.Count(segment, `"`), "segment %q", segment)
			}
		})
	}
}
