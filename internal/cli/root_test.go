package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MimeLyc/deepl-cli/internal/clierr"
)

func TestNormalizeLanguages(t *testing.T) {
	target, source, err := normalizeLanguages("ja", "en")
	require.NoError(t, err)
	assert.Equal(t, "JA", target)
	assert.Equal(t, "EN", source)

	target, source, err = normalizeLanguages("pt-br", "")
	require.NoError(t, err)
	assert.Equal(t, "PT-BR", target)
	assert.Empty(t, source)
}

func TestNormalizeLanguages_MissingTarget(t *testing.T) {
	_, _, err := normalizeLanguages("", "")
	require.Error(t, err)
	assert.True(t, clierr.IsKind(err, clierr.Configuration))
}

func TestNormalizeLanguages_UnsupportedTarget(t *testing.T) {
	_, _, err := normalizeLanguages("XX", "")
	require.Error(t, err)
	assert.True(t, clierr.IsKind(err, clierr.UnsupportedLanguage))
	assert.Contains(t, err.Error(), "XX")
	assert.Contains(t, err.Error(), "--list-languages")
}

func TestNormalizeLanguages_UnsupportedSource(t *testing.T) {
	_, _, err := normalizeLanguages("JA", "QQ")
	require.Error(t, err)
	assert.True(t, clierr.IsKind(err, clierr.UnsupportedLanguage))
	assert.Contains(t, err.Error(), "QQ")
}

func TestSecondsToDuration(t *testing.T) {
	assert.Equal(t, 30*time.Second, secondsToDuration(30))
}

func TestPrintLanguages(t *testing.T) {
	var buf bytes.Buffer
	printLanguages(&buf)

	out := buf.String()
	assert.Contains(t, out, "JA")
	assert.Contains(t, out, "Japanese")
	assert.Contains(t, out, "Total: 33 languages supported")
}

func TestRootCmd_RejectsExtraArgs(t *testing.T) {
	cmd := NewRootCmd("test")
	cmd.SetArgs([]string{"JA", "text", "extra"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	cmd := NewRootCmd("test")

	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["batch"])
	assert.True(t, names["watch"])
	assert.True(t, names["history"])
}
