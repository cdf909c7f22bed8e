// Package scrape implements the one-shot scraping command.
package scrape

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/concursohub/crawler/cmd/common"
	"github.com/concursohub/crawler/internal/domain"
	"github.com/concursohub/crawler/internal/store"
)

// contentTypes maps the CLI argument onto content types. "all" runs every
// dataset in sequence.
var contentTypes = map[string][]domain.ContentType{
	"concursos": {domain.ContentOpen},
	"previstos": {domain.ContentPredicted},
	"noticias":  {domain.ContentNews},
	"all":       {domain.ContentOpen, domain.ContentPredicted, domain.ContentNews},
}

// Command returns the scrape command.
func Command() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:       "scrape [concursos|previstos|noticias|all]",
		Short:     "Run the scraping pipeline once for a content type",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"concursos", "previstos", "noticias", "all"},
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, ok := contentTypes[args[0]]
			if !ok {
				return fmt.Errorf("unknown content type %q", args[0])
			}
			return run(cmd.Context(), targets, migrate)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "create missing tables before scraping")
	return cmd
}

func run(ctx context.Context, targets []domain.ContentType, migrate bool) error {
	deps, err := common.New()
	if err != nil {
		return err
	}
	defer deps.Close()

	if migrate {
		if err := store.Migrate(ctx, deps.DB); err != nil {
			return err
		}
	}

	for _, ct := range targets {
		result, err := deps.Runner.Run(ctx, ct)
		if err != nil {
			return fmt.Errorf("run for %s failed: %w", ct, err)
		}
		fmt.Printf("%s: %d upserted, %d logos uploaded, %d stale deleted\n",
			ct, result.Upserted, result.LogosUploaded, result.StaleDeleted)
	}

	return nil
}
