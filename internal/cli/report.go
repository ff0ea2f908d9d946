package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/MimeLyc/deepl-cli/internal/translator"
)

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

// printLanguages writes the supported-language table.
func printLanguages(w io.Writer) {
	fmt.Fprintln(w, "Supported language codes:")

	codes := translator.Languages()
	for _, code := range codes {
		fmt.Fprintf(w, "  %-8s %s\n", code, translator.DisplayName(code))
	}

	fmt.Fprintf(w, "\nTotal: %d languages supported\n", len(codes))
	fmt.Fprintln(w, "\nUsage: deepl <TARGET_LANG> [input_text or file]")
	fmt.Fprintln(w, "       deepl <TARGET_LANG> --stdin")
	fmt.Fprintln(w, "       deepl <TARGET_LANG> -")
}

// printUsage writes the account usage report with a progress bar and
// quota warnings.
func printUsage(ctx context.Context, w io.Writer, trans *translator.Translator) error {
	usage, err := trans.Usage(ctx)
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	fmt.Fprintln(w, "DeepL API Usage:")
	p.Fprintf(w, "  Characters used: %d\n", usage.CharactersUsed)
	p.Fprintf(w, "  Character limit: %d\n", usage.CharacterLimit)
	p.Fprintf(w, "  Remaining: %d\n", usage.Remaining())
	fmt.Fprintf(w, "  Usage: %.1f%%\n", usage.PercentageUsed)

	const barWidth = 40
	filled := int(barWidth * usage.PercentageUsed / 100)
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("#", filled) + strings.Repeat("-", barWidth-filled)
	fmt.Fprintf(w, "  [%s]\n", bar)

	switch {
	case usage.PercentageUsed > 90:
		fmt.Fprintln(w, "\n  Warning: API quota nearly exhausted!")
	case usage.PercentageUsed > 75:
		fmt.Fprintln(w, "\n  Warning: API quota usage is high")
	}
	return nil
}
