package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	service "github.com/okian/goalguessr/internal/app"
	"github.com/okian/goalguessr/pkg/logger"
)

func (c *cli) newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Store the built-in classic goals as approved",
		Long:  "Seed stores the built-in classic goals in the database as approved. Running it again updates them in place.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			opts, err := c.serviceOptions()
			if err != nil {
				return err
			}
			svc := service.New(append(opts, service.WithScheduler(false))...)
			if err := svc.Start(ctx); err != nil {
				return fmt.Errorf("start service: %w", err)
			}
			defer svc.Stop(context.WithoutCancel(ctx))

			goals, err := svc.Seed(ctx)
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			for _, g := range goals {
				logger.Get().Info(ctx, "seeded goal",
					logger.String("id", g.ID),
					logger.String("scorer", g.Metadata.Scorer),
					logger.Int("year", g.Metadata.Year))
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d goals into %s\n", len(goals), c.cfg.DatabasePath)
			return err
		},
	}
}
