package cli

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/MimeLyc/deepl-cli/internal/batch"
	"github.com/MimeLyc/deepl-cli/internal/clierr"
	"github.com/MimeLyc/deepl-cli/internal/config"
	"github.com/MimeLyc/deepl-cli/internal/history"
)

func newBatchCmd() *cobra.Command {
	var (
		sourceLang string
		outputDir  string
		workers    int
		delay      float64
	)

	cmd := &cobra.Command{
		Use:   "batch <target_lang> <file>...",
		Short: "Translate multiple files concurrently",
		Long: `Translate multiple files with a bounded worker pool. Each file is
written next to its input (or into --output-dir) as {stem}_{lang}{ext}.
One file failing does not abort the others.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New()
			if err != nil {
				return err
			}

			targetLang, srcLang, err := normalizeLanguages(args[0], sourceLang)
			if err != nil {
				return err
			}

			trans, err := buildTranslator(cfg)
			if err != nil {
				return err
			}

			if workers <= 0 {
				workers = cfg.MaxWorkers
			}
			if delay < 0 {
				delay = cfg.BatchDelay
			}

			result, err := batch.New(trans).TranslateFiles(cmd.Context(), batch.Job{
				Files:      args[1:],
				TargetLang: targetLang,
				SourceLang: srcLang,
				OutputDir:  outputDir,
				MaxWorkers: workers,
				Delay:      time.Duration(delay * float64(time.Second)),
			})
			if err != nil {
				return err
			}

			printBatchResult(result)

			for path, fr := range result.PerFile {
				if fr.Status != batch.StatusSuccess {
					continue
				}
				recordHistory(cmd.Context(), cfg, history.Entry{
					Origin:     "batch:" + path,
					TargetLang: targetLang,
					SourceLang: srcLang,
					Characters: fr.Characters,
					Sink:       "file",
				})
			}

			if result.Successful == 0 && result.Failed > 0 {
				return clierr.New(clierr.Translation, "All %d files failed to translate", result.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourceLang, "source-lang", "s", "", "Source language code (auto-detect if not specified)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Output directory (default: next to each input)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Maximum concurrent translations (default: 3)")
	cmd.Flags().Float64Var(&delay, "delay", -1, "Delay between translations in seconds (default: 0.5)")

	return cmd
}

func printBatchResult(result *batch.Result) {
	paths := make([]string, 0, len(result.PerFile))
	for path := range result.PerFile {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		fr := result.PerFile[path]
		if fr.Status == batch.StatusSuccess {
			fmt.Fprintf(os.Stderr, "  ok     %s -> %s (%d chars)\n", path, fr.OutputPath, fr.Characters)
		} else {
			fmt.Fprintf(os.Stderr, "  failed %s: %s\n", path, fr.Error)
		}
	}

	fmt.Fprintf(os.Stderr, "Batch finished: %d/%d succeeded, %d failed, %d characters in %.1fs\n",
		result.Successful, result.TotalFiles, result.Failed, result.TotalCharacters, result.Elapsed.Seconds())
}
