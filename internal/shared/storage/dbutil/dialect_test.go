package dbutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRebindToQuestion(t *testing.T) {
	assert.Equal(t, "SELECT * FROM t WHERE a = ? AND b = ?", RebindToQuestion("SELECT * FROM t WHERE a = $1 AND b = $2"))
	assert.Equal(t, "SELECT 1", RebindToPositional("SELECT 1"))
	assert.Equal(t, "SET status = $1", StripPgCasts("SET status = $1::varchar"))
}

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"par", "%par%"},
		{"PaR", "%par%"},
		{"50%", `%50\%%`},
		{"a_b", `%a\_b%`},
		{`c:\x`, `%c:\\x%`},
		{"", "%%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ContainsPattern(tt.in), tt.in)
	}
}
