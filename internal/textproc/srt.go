package textproc

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/MimeLyc/deepl-cli/pkg/log"
)

var timingRe = regexp.MustCompile(`^\d{2}:\d{2}:\d{2},\d{3} --> \d{2}:\d{2}:\d{2},\d{3}`)

// entryDelay paces per-entry translations, below the segmenter's chunk
// delay since subtitle entries are tiny.
const entryDelay = 100 * time.Millisecond

// Translator is the facade contract the subtitle translator needs.
type Translator interface {
	Translate(ctx context.Context, text, targetLang, sourceLang string) (string, error)
}

// SubtitleTranslator translates SRT content entry by entry, keeping
// index and timing lines untouched.
type SubtitleTranslator struct {
	translator Translator
	delay      time.Duration
}

// NewSubtitleTranslator creates an SRT translator with default pacing.
func NewSubtitleTranslator(translator Translator) *SubtitleTranslator {
	return &SubtitleTranslator{
		translator: translator,
		delay:      entryDelay,
	}
}

// IsSRT reports whether path names a SubRip subtitle file.
func IsSRT(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".srt")
}

// Translate translates SRT subtitle content. Blocks that do not parse
// as subtitle entries pass through unchanged.
func (s *SubtitleTranslator) Translate(ctx context.Context, content, targetLang, sourceLang string) (string, error) {
	blocks := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n\n")
	translated := make([]string, 0, len(blocks))

	entries := 0
	for i, block := range blocks {
		block = strings.Trim(block, "\n")
		if block == "" {
			continue
		}

		index, timing, text, ok := parseEntry(block)
		if !ok {
			translated = append(translated, block)
			continue
		}
		entries++

		result := ""
		if strings.TrimSpace(text) != "" {
			log.Debug("Translating subtitle %s (%d blocks total)", index, len(blocks))
			var err error
			result, err = s.translator.Translate(ctx, text, targetLang, sourceLang)
			if err != nil {
				return "", fmt.Errorf("subtitle entry %s: %w", index, err)
			}
		}

		translated = append(translated, fmt.Sprintf("%s\n%s\n%s", index, timing, result))

		if i < len(blocks)-1 {
			select {
			case <-time.After(s.delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}

	if entries == 0 {
		return "", fmt.Errorf("no subtitle entries found")
	}
	return strings.Join(translated, "\n\n") + "\n", nil
}

// parseEntry splits one SRT block into index, timing and text lines.
func parseEntry(block string) (index, timing, text string, ok bool) {
	lines := strings.Split(block, "\n")
	if len(lines) < 2 {
		return "", "", "", false
	}

	index = strings.TrimSpace(lines[0])
	if index == "" || strings.IndexFunc(index, func(r rune) bool { return r < '0' || r > '9' }) != -1 {
		return "", "", "", false
	}
	if !timingRe.MatchString(strings.TrimSpace(lines[1])) {
		return "", "", "", false
	}

	timing = strings.TrimSpace(lines[1])
	text = strings.TrimSpace(strings.Join(lines[2:], "\n"))
	return index, timing, text, true
}
