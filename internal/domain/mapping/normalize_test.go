package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	t.Run("lowercases and collapses separators", func(t *testing.T) {
		assert.Equal(t, "mojito classic 250", NormalizeName("  Mojito -- Classic (250)  "))
	})

	t.Run("strips line breaks and tabs", func(t *testing.T) {
		assert.Equal(t, "gin tonic", NormalizeName("Gin\n\tTonic"))
	})

	t.Run("strips apostrophes and backticks without splitting", func(t *testing.T) {
		assert.Equal(t, "oclock stout", NormalizeName("O'Clock `Stout`"))
	})

	t.Run("drops ampersand by default", func(t *testing.T) {
		assert.Equal(t, "rum cola", NormalizeName("Rum & Cola"))
	})

	t.Run("keeps ampersand when requested", func(t *testing.T) {
		assert.Equal(t, "rum & cola", NormalizeNameKeepAmpersand("Rum & Cola"))
	})

	t.Run("folds full-width characters", func(t *testing.T) {
		assert.Equal(t, "cola 500", NormalizeName("Ｃｏｌａ　５００"))
	})

	t.Run("empty and separator-only input", func(t *testing.T) {
		assert.Equal(t, "", NormalizeName(""))
		assert.Equal(t, "", NormalizeName(" -- \t\n "))
	})
}

func TestNormalizeName_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"Mojito -- Classic (250)",
		"O'Clock `Stout`",
		"Rum & Cola",
		"Ｃｏｌａ　５００",
		"already normalized name 42",
		"  \t weird \n input!!! ",
		"ünïcôdé Nämé",
	}

	for _, in := range inputs {
		once := NormalizeName(in)
		assert.Equal(t, once, NormalizeName(once), "input %q", in)

		onceAmp := NormalizeNameKeepAmpersand(in)
		assert.Equal(t, onceAmp, NormalizeNameKeepAmpersand(onceAmp), "input %q", in)
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "JB3001", NormalizeCode("jb 3001"))
	assert.Equal(t, "JB3001", NormalizeCode("JB3001"))
	assert.Equal(t, "JB3001", NormalizeCode("  J B 3001\t"))
	assert.Equal(t, "", NormalizeCode("   "))
}

func TestCanonicalIngredient(t *testing.T) {
	assert.Equal(t, "espresso", CanonicalIngredient("  Espresso "))
	assert.Equal(t, "cola syrup", CanonicalIngredient("Cola Syrup"))
}
