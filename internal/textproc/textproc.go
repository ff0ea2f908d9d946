// Package textproc holds the regex utilities layered around
// translation: masking of placeholders and code blocks so they survive
// the provider untouched, and SRT subtitle handling.
package textproc

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	placeholderRe = regexp.MustCompile(`\{[^}]+\}`)
	codeBlockRe   = regexp.MustCompile("```[\\s\\S]*?```|`[^`]+`")
)

// MaskPlaceholders replaces {name}-style interpolation tokens with
// opaque markers and returns the mapping needed to restore them.
func MaskPlaceholders(text string) (string, map[string]string) {
	placeholders := make(map[string]string)
	counter := 0

	masked := placeholderRe.ReplaceAllStringFunc(text, func(match string) string {
		token := fmt.Sprintf("__PLACEHOLDER_%d__", counter)
		placeholders[token] = match
		counter++
		return token
	})
	return masked, placeholders
}

// RestorePlaceholders puts masked placeholders back.
func RestorePlaceholders(text string, placeholders map[string]string) string {
	for token, placeholder := range placeholders {
		text = strings.ReplaceAll(text, token, placeholder)
	}
	return text
}

// CodeBlock pairs a mask token with the code it replaced.
type CodeBlock struct {
	Token string
	Code  string
}

// MaskCodeBlocks replaces fenced and inline code with opaque markers.
func MaskCodeBlocks(text string) (string, []CodeBlock) {
	var blocks []CodeBlock
	counter := 0

	masked := codeBlockRe.ReplaceAllStringFunc(text, func(match string) string {
		token := fmt.Sprintf("__CODE_BLOCK_%d__", counter)
		blocks = append(blocks, CodeBlock{Token: token, Code: match})
		counter++
		return token
	})
	return masked, blocks
}

// RestoreCodeBlocks puts masked code back.
func RestoreCodeBlocks(text string, blocks []CodeBlock) string {
	for _, block := range blocks {
		text = strings.ReplaceAll(text, block.Token, block.Code)
	}
	return text
}
