package translator

import (
	"context"

	"github.com/MimeLyc/deepl-cli/internal/deepl"
)

// Provider is the remote translation backend. *deepl.Client satisfies
// it; tests substitute a mock.
type Provider interface {
	TranslateText(ctx context.Context, text, targetLang, sourceLang string) (*deepl.Translation, error)
	GetUsage(ctx context.Context) (*deepl.Usage, error)
}

// UsageSnapshot is account consumption in percentage form. Derived per
// call, never persisted.
type UsageSnapshot struct {
	CharactersUsed int64
	CharacterLimit int64
	PercentageUsed float64
}

// Remaining returns the characters left before the quota is reached.
func (u UsageSnapshot) Remaining() int64 {
	if u.CharacterLimit < u.CharactersUsed {
		return 0
	}
	return u.CharacterLimit - u.CharactersUsed
}
