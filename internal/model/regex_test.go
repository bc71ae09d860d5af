package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileUserPattern_DefaultsCaseInsensitive(t *testing.T) {
	re, err := CompileUserPattern("pak n save", "")
	require.NoError(t, err)
	assert.True(t, re.MatchString("PAK N SAVE AUCKLAND"))
}

func TestCompileUserPattern_ExplicitFlags(t *testing.T) {
	re, err := CompileUserPattern("^shop$", "im")
	require.NoError(t, err)
	assert.True(t, re.MatchString("first\nSHOP\nlast"))
}

func TestCompileUserPattern_UnsupportedFlagsIgnored(t *testing.T) {
	re, err := CompileUserPattern("netflix", "giu")
	require.NoError(t, err)
	assert.True(t, re.MatchString("NETFLIX.COM"))
}

func TestCompileUserPattern_Invalid(t *testing.T) {
	_, err := CompileUserPattern("([unclosed", "i")
	assert.Error(t, err)
}

func TestMatchText(t *testing.T) {
	tx := Transaction{Merchant: "COUNTDOWN", Note: "REF001"}
	assert.Equal(t, "COUNTDOWN REF001", tx.MatchText())

	empty := Transaction{}
	assert.Equal(t, " ", empty.MatchText())
}
