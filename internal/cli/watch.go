package cli

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/MimeLyc/deepl-cli/internal/batch"
	"github.com/MimeLyc/deepl-cli/internal/clierr"
	"github.com/MimeLyc/deepl-cli/internal/config"
	"github.com/MimeLyc/deepl-cli/internal/service"
)

func newWatchCmd() *cobra.Command {
	var (
		sourceLang string
		outputDir  string
		cronExpr   string
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "watch <target_lang> <dir>",
		Short: "Periodically translate new files in a directory",
		Long: `Watch a directory on a cron schedule and batch-translate every
.txt, .md and .srt file that has no translated output yet. Runs until
interrupted.`,
		Args: cobra.ExactArgs(2),
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

			if cronExpr == "" {
				cronExpr = cfg.WatchCron
			}
			if workers <= 0 {
				workers = cfg.MaxWorkers
			}

			svc := service.NewWatchService(service.Config{
				Dir:        args[1],
				CronExpr:   cronExpr,
				TargetLang: targetLang,
				SourceLang: srcLang,
				OutputDir:  outputDir,
				MaxWorkers: workers,
				Delay:      time.Duration(cfg.BatchDelay * float64(time.Second)),
			}, cron.New(), batch.New(trans))

			if err := svc.Schedule(cmd.Context()); err != nil {
				return clierr.Wrap(clierr.Configuration, err, "Invalid cron expression %q: %v", cronExpr, err)
			}

			svc.Run(cmd.Context())
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourceLang, "source-lang", "s", "", "Source language code (auto-detect if not specified)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Output directory (default: next to each input)")
	cmd.Flags().StringVar(&cronExpr, "cron", "", "Cron schedule (default: every 10 minutes)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Maximum concurrent translations (default: 3)")

	return cmd
}
