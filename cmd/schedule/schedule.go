// Package schedule implements cron-driven scraping runs.
package schedule

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/concursohub/crawler/cmd/common"
	"github.com/concursohub/crawler/internal/domain"
)

// Command returns the schedule command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run the pipeline on the configured cron schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
}

func run() error {
	deps, err := common.New()
	if err != nil {
		return err
	}
	defer deps.Close()

	log := deps.Logger.WithComponent("schedule")

	// Overlapping runs against the same table are unsafe; the scheduler,
	// not the pipeline, prevents them.
	var running atomic.Bool

	job := func() {
		if !running.CompareAndSwap(false, true) {
			log.Warn("previous run still in progress, skipping")
			return
		}
		defer running.Store(false)

		ctx := context.Background()
		for _, ct := range []domain.ContentType{
			domain.ContentOpen, domain.ContentPredicted, domain.ContentNews,
		} {
			result, runErr := deps.Runner.Run(ctx, ct)
			if runErr != nil {
				log.Error("scheduled run failed", "content_type", string(ct), "error", runErr)
				continue
			}
			log.Info("scheduled run finished",
				"content_type", string(ct),
				"upserted", result.Upserted,
				"deleted", result.StaleDeleted)
		}
	}

	c := cron.New()
	if _, err = c.AddFunc(deps.Config.Schedule.Cron, job); err != nil {
		return err
	}

	log.Info("scheduler started", "cron", deps.Config.Schedule.Cron)
	c.Start()
	defer c.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info("scheduler stopping", "signal", sig.String())

	return nil
}
