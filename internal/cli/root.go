// Package cli wires the command tree: the root translate command plus
// the batch, watch and history subcommands.
package cli

import (
	"context"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/MimeLyc/deepl-cli/internal/clierr"
	"github.com/MimeLyc/deepl-cli/internal/config"
	"github.com/MimeLyc/deepl-cli/internal/deepl"
	"github.com/MimeLyc/deepl-cli/internal/history"
	"github.com/MimeLyc/deepl-cli/internal/input"
	"github.com/MimeLyc/deepl-cli/internal/output"
	"github.com/MimeLyc/deepl-cli/internal/segment"
	"github.com/MimeLyc/deepl-cli/internal/textproc"
	"github.com/MimeLyc/deepl-cli/internal/translator"
	"github.com/MimeLyc/deepl-cli/pkg/log"
)

// Global flags, inherited by all subcommands.
var (
	flagVerbose bool
	flagAPIKey  string
)

type rootOptions struct {
	clipboard     bool
	stdin         bool
	sourceLang    string
	outputPath    string
	listLanguages bool
	usage         bool
	preserveCode  bool
}

// NewRootCmd builds the command tree.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "deepl [target_lang] [text|file|-]",
		Short: "Command-line client for the DeepL translation API",
		Long: `deepl — translate text, files, stdin or the clipboard via the DeepL API.

Examples:
  # Direct text translation
  deepl JA "Hello, world!"

  # File translation
  deepl JA input.txt

  # Standard input
  echo "Hello, world!" | deepl JA
  deepl JA --stdin < input.txt
  deepl JA -

  # Clipboard translation
  deepl EN-US --clipboard

  # Output to file
  deepl JA input.txt -o output.txt

  # Account usage and supported languages
  deepl --usage
  deepl --list-languages`,
		Version:       version,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagVerbose {
				log.GetLogger().SetLevel(log.LevelDebug)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd.Context(), opts, args)
		},
	}

	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose output")
	root.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "DeepL API key (overrides DEEPL_API_KEY and key files)")

	root.Flags().BoolVarP(&opts.clipboard, "clipboard", "c", false, "Use clipboard for input and output")
	root.Flags().BoolVar(&opts.stdin, "stdin", false, "Read input from stdin")
	root.Flags().StringVarP(&opts.sourceLang, "source-lang", "s", "", "Source language code (auto-detect if not specified)")
	root.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Output file path (default: stdout)")
	root.Flags().BoolVar(&opts.listLanguages, "list-languages", false, "List all supported language codes")
	root.Flags().BoolVar(&opts.usage, "usage", false, "Show API usage information")
	root.Flags().BoolVar(&opts.preserveCode, "preserve-code", false, "Keep code blocks and {placeholders} untranslated")

	root.AddCommand(
		newBatchCmd(),
		newWatchCmd(),
		newHistoryCmd(),
	)

	return root
}

func runTranslate(ctx context.Context, opts *rootOptions, args []string) error {
	if opts.listLanguages {
		printLanguages(os.Stdout)
		return nil
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	if opts.usage {
		trans, err := buildTranslator(cfg)
		if err != nil {
			return err
		}
		return printUsage(ctx, os.Stdout, trans)
	}

	targetLang := ""
	inputToken := ""
	if len(args) > 0 {
		targetLang = args[0]
	}
	if len(args) > 1 {
		inputToken = args[1]
	}

	targetLang, sourceLang, err := normalizeLanguages(targetLang, opts.sourceLang)
	if err != nil {
		return err
	}

	if opts.clipboard && (opts.stdin || inputToken == "-") {
		return clierr.New(clierr.Configuration,
			"Cannot use --clipboard with --stdin or '-' simultaneously")
	}

	trans, err := buildTranslator(cfg)
	if err != nil {
		return err
	}

	resolved, err := input.New().Resolve(input.Request{
		Text:      inputToken,
		Stdin:     opts.stdin,
		Clipboard: opts.clipboard,
	})
	if err != nil {
		return err
	}

	text := resolved.Content
	var codeBlocks []textproc.CodeBlock
	var placeholders map[string]string
	if opts.preserveCode {
		text, codeBlocks = textproc.MaskCodeBlocks(text)
		text, placeholders = textproc.MaskPlaceholders(text)
	}

	charCount := utf8.RuneCountInString(text)
	if charCount > 10000 {
		p := message.NewPrinter(language.English)
		p.Fprintf(os.Stderr, "Translating %d characters to %s...\n", charCount, targetLang)
	}

	var translated string
	if resolved.Origin == input.SourceFile && textproc.IsSRT(resolved.Path) {
		translated, err = textproc.NewSubtitleTranslator(trans).Translate(ctx, text, targetLang, sourceLang)
	} else {
		translated, err = segment.New(trans).TranslateLarge(ctx, text, targetLang, sourceLang, cfg.SegmentSize)
	}
	if err != nil {
		return err
	}

	if opts.preserveCode {
		translated = textproc.RestorePlaceholders(translated, placeholders)
		translated = textproc.RestoreCodeBlocks(translated, codeBlocks)
	}

	if strings.TrimSpace(translated) == "" {
		return clierr.New(clierr.Translation, "Translation returned empty result")
	}

	sink := output.Sink{Clipboard: opts.clipboard, Path: opts.outputPath}
	if err := output.New().Deliver(translated, sink); err != nil {
		return err
	}

	recordHistory(ctx, cfg, history.Entry{
		Origin:     resolved.Origin.String(),
		TargetLang: targetLang,
		SourceLang: sourceLang,
		Characters: charCount,
		Sink:       sink.Name(),
	})

	log.Info("Translation completed successfully")
	return nil
}

// buildTranslator assembles the provider client and facade, resolving
// the API key from flag, environment and key files.
func buildTranslator(cfg *config.Config) (*translator.Translator, error) {
	apiKey := cfg.ResolveAPIKey(flagAPIKey)
	if apiKey == "" {
		locations := strings.Join(config.APIKeyLocations(), "\n  ")
		return nil, clierr.New(clierr.Configuration,
			"API key not found. Provide one of:\n"+
				"  1. --api-key flag\n"+
				"  2. DEEPL_API_KEY environment variable\n"+
				"  3. A key file at:\n  %s\n"+
				"Get your API key from: https://www.deepl.com/pro-api", locations)
	}

	clientOpts := []deepl.Option{}
	if cfg.APIURL != "" {
		clientOpts = append(clientOpts, deepl.WithBaseURL(cfg.APIURL))
	}
	if cfg.Timeout > 0 {
		clientOpts = append(clientOpts, deepl.WithTimeout(secondsToDuration(cfg.Timeout)))
	}

	client, err := deepl.NewClient(apiKey, clientOpts...)
	if err != nil {
		return nil, clierr.Wrap(clierr.Configuration, err, "Failed to initialize DeepL client: %v", err)
	}
	return translator.New(client), nil
}

// normalizeLanguages validates and uppercases the language pair before
// any input source is consumed.
func normalizeLanguages(targetLang, sourceLang string) (string, string, error) {
	if targetLang == "" {
		return "", "", clierr.New(clierr.Configuration,
			"Target language is required for translation (use --help for usage)")
	}

	targetLang = strings.ToUpper(targetLang)
	if !translator.IsSupported(targetLang) {
		preview := strings.Join(translator.Languages()[:10], ", ")
		return "", "", clierr.New(clierr.UnsupportedLanguage,
			"Unsupported target language: %s\nAvailable languages: %s... (use --list-languages for the full list)",
			targetLang, preview)
	}

	if sourceLang != "" {
		sourceLang = strings.ToUpper(sourceLang)
		if !translator.IsSupported(sourceLang) {
			return "", "", clierr.New(clierr.UnsupportedLanguage,
				"Unsupported source language: %s (use --list-languages for the full list)", sourceLang)
		}
	}
	return targetLang, sourceLang, nil
}

// recordHistory logs the translation to the history store. Failures
// are reported but never fail the translation itself.
func recordHistory(ctx context.Context, cfg *config.Config, entry history.Entry) {
	if !cfg.HistoryEnabled() {
		return
	}
	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		log.Warn("History disabled: %v", err)
		return
	}
	defer store.Close()

	if err := store.Record(ctx, entry); err != nil {
		log.Warn("Failed to record history: %v", err)
	}
}
