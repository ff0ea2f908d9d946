// Package segment splits oversized texts into provider-safe chunks
// along paragraph boundaries and translates them strictly in order.
package segment

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MimeLyc/deepl-cli/pkg/log"
)

// paragraphSep is the blank-line boundary chunks are built on.
const paragraphSep = "\n\n"

// chunkDelay paces consecutive chunk translations. Smaller than the
// batch inter-task delay since chunks belong to one document.
const chunkDelay = 200 * time.Millisecond

// Translator is the facade contract the segmenter needs.
type Translator interface {
	Translate(ctx context.Context, text, targetLang, sourceLang string) (string, error)
}

// Segmenter translates large texts chunk by chunk through a Translator.
type Segmenter struct {
	translator Translator
	delay      time.Duration
}

// New creates a Segmenter with the default chunk pacing.
func New(translator Translator) *Segmenter {
	return &Segmenter{
		translator: translator,
		delay:      chunkDelay,
	}
}

// TranslateLarge translates text, segmenting it when it exceeds
// maxChunk characters. A failure on any chunk aborts the whole
// translation; partial documents are never returned.
func (s *Segmenter) TranslateLarge(ctx context.Context, text, targetLang, sourceLang string, maxChunk int) (string, error) {
	if maxChunk <= 0 || utf8.RuneCountInString(text) <= maxChunk {
		return s.translator.Translate(ctx, text, targetLang, sourceLang)
	}

	chunks := Split(text, maxChunk)
	translated := make([]string, 0, len(chunks))

	for i, chunk := range chunks {
		log.Debug("Translating segment %d/%d (%d chars)", i+1, len(chunks), len(chunk))

		result, err := s.translator.Translate(ctx, chunk, targetLang, sourceLang)
		if err != nil {
			return "", fmt.Errorf("segment %d/%d: %w", i+1, len(chunks), err)
		}
		translated = append(translated, result)

		if i < len(chunks)-1 {
			select {
			case <-time.After(s.delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}

	// Rejoin with the separator implied by the source structure.
	if strings.Contains(text, paragraphSep) {
		return strings.Join(translated, paragraphSep), nil
	}
	return strings.Join(translated, " "), nil
}

// Split divides text into chunks of at most maxChunk characters.
// Paragraphs are never split: a single paragraph longer than maxChunk
// is kept whole. Text without paragraph breaks is sliced at exactly
// maxChunk characters.
func Split(text string, maxChunk int) []string {
	if !strings.Contains(text, paragraphSep) {
		return sliceFixed(text, maxChunk)
	}

	paragraphs := strings.Split(text, paragraphSep)
	chunks := make([]string, 0, len(paragraphs))

	var current []string
	currentSize := 0

	for _, para := range paragraphs {
		paraSize := utf8.RuneCountInString(para) + len(paragraphSep)

		if currentSize+paraSize > maxChunk && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, paragraphSep))
			current = []string{para}
			currentSize = paraSize
		} else {
			current = append(current, para)
			currentSize += paraSize
		}
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, paragraphSep))
	}
	return chunks
}

func sliceFixed(text string, maxChunk int) []string {
	runes := []rune(text)
	chunks := make([]string, 0, len(runes)/maxChunk+1)
	for start := 0; start < len(runes); start += maxChunk {
		end := start + maxChunk
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
