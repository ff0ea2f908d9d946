// Package translator wraps the DeepL provider behind language
// validation, case normalization and the local error taxonomy.
package translator

import (
	"context"
	"errors"
	"strings"

	"github.com/abadojack/whatlanggo"

	"github.com/MimeLyc/deepl-cli/internal/clierr"
	"github.com/MimeLyc/deepl-cli/internal/deepl"
	"github.com/MimeLyc/deepl-cli/pkg/log"
)

// Translator is the translation facade used by the CLI, GUI, batch and
// watch paths.
type Translator struct {
	provider Provider
}

// New creates a Translator delegating to the given provider.
func New(provider Provider) *Translator {
	return &Translator{provider: provider}
}

// Translate translates text into targetLang. sourceLang may be empty
// to let the provider auto-detect. Input that trims to empty returns
// an empty result without contacting the provider.
func (t *Translator) Translate(ctx context.Context, text, targetLang, sourceLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	targetLang = strings.ToUpper(targetLang)
	if !IsSupported(targetLang) {
		return "", clierr.New(clierr.UnsupportedLanguage,
			"Unsupported target language: %s (use --list-languages for the full list)", targetLang)
	}

	if sourceLang != "" {
		sourceLang = strings.ToUpper(sourceLang)
		if !IsSupported(sourceLang) {
			return "", clierr.New(clierr.UnsupportedLanguage,
				"Unsupported source language: %s (use --list-languages for the full list)", sourceLang)
		}
	} else if hint := whatlanggo.DetectLang(text).Iso6391(); hint != "" {
		// Informational only, never sent to the provider.
		log.Debug("Source language not set, input looks like %q", hint)
	}

	log.Debug("Translating %d characters to %s", len(text), targetLang)

	result, err := t.provider.TranslateText(ctx, text, targetLang, sourceLang)
	if err != nil {
		return "", mapProviderError(err)
	}

	detected := result.DetectedSourceLanguage
	if detected == "" {
		detected = sourceLang
	}
	log.Info("Translation completed: %s -> %s", detected, targetLang)

	return result.Text, nil
}

// Usage retrieves the account usage snapshot. A limit of zero reports
// 100% used rather than dividing by zero.
func (t *Translator) Usage(ctx context.Context) (UsageSnapshot, error) {
	usage, err := t.provider.GetUsage(ctx)
	if err != nil {
		var apiErr *deepl.APIError
		if errors.As(err, &apiErr) && apiErr.IsAuth() {
			return UsageSnapshot{}, clierr.Wrap(clierr.Authentication, err,
				"Invalid DeepL API key, check it at https://www.deepl.com/account/summary")
		}
		return UsageSnapshot{}, clierr.Wrap(clierr.Usage, err,
			"Failed to retrieve usage information: %v", err)
	}

	snapshot := UsageSnapshot{
		CharactersUsed: usage.CharacterCount,
		CharacterLimit: usage.CharacterLimit,
		PercentageUsed: 100.0,
	}
	if usage.CharacterLimit > 0 {
		snapshot.PercentageUsed = float64(usage.CharacterCount) / float64(usage.CharacterLimit) * 100
	}
	return snapshot, nil
}

func mapProviderError(err error) error {
	var apiErr *deepl.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.IsAuth():
			return clierr.Wrap(clierr.Authentication, err,
				"Invalid DeepL API key, check it at https://www.deepl.com/account/summary")
		case apiErr.IsQuota():
			return clierr.Wrap(clierr.QuotaExceeded, err,
				"DeepL API quota exceeded, check your limits at https://www.deepl.com/account/usage")
		default:
			return clierr.Wrap(clierr.Translation, err, "Translation failed: %v", err)
		}
	}
	return clierr.Wrap(clierr.Translation, err, "Translation failed: %v", err)
}
