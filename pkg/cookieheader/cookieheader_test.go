package cookieheader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	t.Run("empty header", func(t *testing.T) {
		assert.Nil(t, Parse(""))
		assert.Nil(t, Parse("   "))
	})

	t.Run("single pair", func(t *testing.T) {
		pairs := Parse("session=abc123")

		assert.Equal(t, []Pair{{Name: "session", Value: "abc123"}}, pairs)
	})

	t.Run("multiple pairs preserve order", func(t *testing.T) {
		pairs := Parse("a=1; b=2")

		assert.Equal(t, []Pair{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}, pairs)
	})

	t.Run("malformed and empty segments are skipped", func(t *testing.T) {
		pairs := Parse("a=1;;b=2; =x; c=; junk")

		assert.Equal(t, []Pair{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}, pairs)
	})

	t.Run("value may contain equals sign", func(t *testing.T) {
		pairs := Parse("token=abc=def")

		assert.Equal(t, []Pair{{Name: "token", Value: "abc=def"}}, pairs)
	})

	t.Run("whitespace around names and values is trimmed", func(t *testing.T) {
		pairs := Parse("  a = 1 ;  b =2  ")

		assert.Equal(t, []Pair{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}, pairs)
	})

	t.Run("all malformed yields no pairs", func(t *testing.T) {
		assert.Nil(t, Parse("junk; ; more junk"))
	})
}
