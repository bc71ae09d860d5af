package id

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Format(t *testing.T) {
	got := New("20240315", 7)
	assert.Regexp(t, regexp.MustCompile(`^20240315-7-[0-9a-f]{4}$`), got)
}

func TestNew_UniqueSuffixes(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := New("20240315", i)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestDatePrefix(t *testing.T) {
	assert.Equal(t, "20240315", DatePrefix("20240315-7-a3f1"))
	assert.Equal(t, "", DatePrefix("noseparator"))
	assert.Equal(t, "", DatePrefix(""))
}
