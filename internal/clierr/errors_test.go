package clierr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormatsMessage(t *testing.T) {
	err := New(Input, "No input provided: %s", "detail")
	assert.Equal(t, "No input provided: detail", err.Error())
	assert.Equal(t, Input, err.Kind)
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(Output, cause, "Cannot write output")

	assert.Equal(t, "Cannot write output", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestKindOfThroughWrapping(t *testing.T) {
	inner := New(QuotaExceeded, "quota exhausted")
	outer := fmt.Errorf("batch file: %w", inner)

	kind, ok := KindOf(outer)
	require.True(t, ok)
	assert.Equal(t, QuotaExceeded, kind)
	assert.True(t, IsKind(outer, QuotaExceeded))
	assert.False(t, IsKind(outer, Authentication))
}

func TestKindOfPlainError(t *testing.T) {
	_, ok := KindOf(errors.New("plain"))
	assert.False(t, ok)
	assert.False(t, IsKind(errors.New("plain"), Input))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "unsupported language", UnsupportedLanguage.String())
	assert.Equal(t, "unknown error", Kind(99).String())
}
