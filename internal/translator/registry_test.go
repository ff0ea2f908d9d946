package translator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSupported_AllRegisteredCodes(t *testing.T) {
	for _, code := range Languages() {
		assert.True(t, IsSupported(code), "uppercase %s", code)
	}
}

func TestIsSupported_CaseInsensitive(t *testing.T) {
	assert.True(t, IsSupported("ja"))
	assert.True(t, IsSupported("Ja"))
	assert.True(t, IsSupported("en-gb"))
	assert.True(t, IsSupported("pt-br"))
}

func TestIsSupported_Rejections(t *testing.T) {
	assert.False(t, IsSupported(""))
	assert.False(t, IsSupported("XX"))
	assert.False(t, IsSupported("EN-AU"))
}

func TestLanguages_SortedCopy(t *testing.T) {
	langs := Languages()
	assert.NotEmpty(t, langs)
	assert.IsIncreasing(t, langs)

	// Mutating the returned slice must not affect the registry.
	langs[0] = "AA"
	assert.NotContains(t, Languages(), "AA")
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Japanese", DisplayName("JA"))
	assert.Equal(t, "German", DisplayName("DE"))
	// Unparseable codes fall back to the code itself.
	assert.Equal(t, "???", DisplayName("???"))
}
