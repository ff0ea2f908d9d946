package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MimeLyc/deepl-cli/internal/clierr"
	"github.com/MimeLyc/deepl-cli/internal/config"
	"github.com/MimeLyc/deepl-cli/internal/history"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent translations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New()
			if err != nil {
				return err
			}
			if !cfg.HistoryEnabled() {
				return clierr.New(clierr.Configuration, "History is disabled (DEEPL_HISTORY_DB=off)")
			}

			store, err := history.Open(cfg.HistoryDB)
			if err != nil {
				return clierr.Wrap(clierr.Configuration, err, "Failed to open history database: %v", err)
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(os.Stderr, "No translations recorded yet")
				return nil
			}

			for _, e := range entries {
				pair := e.TargetLang
				if e.SourceLang != "" {
					pair = e.SourceLang + "->" + e.TargetLang
				}
				fmt.Printf("%s  %-10s %-12s %7d chars  %s\n",
					e.CreatedAt.Local().Format("2006-01-02 15:04"), pair, e.Origin, e.Characters, e.Sink)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show")

	return cmd
}
