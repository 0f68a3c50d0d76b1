package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Summer Collection", "summer-collection"},
		{"Hello   World!", "hello-world"},
		{"Éclair & Café", "eclair-cafe"},
		{"  trimmed  ", "trimmed"},
		{"--Already--Hyphenated--", "already-hyphenated"},
		{"", ""},
		{"123 Numbers", "123-numbers"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, Generate(c.in), "input %q", c.in)
	}
}
