package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	service "github.com/okian/goalguessr/internal/app"
	"github.com/okian/goalguessr/internal/config"
	"github.com/okian/goalguessr/pkg/logger"
)

// cli carries state shared by subcommands after the root pre-run.
type cli struct {
	envFile string
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "goalguessr",
		Short: "Daily football goal guessing game",
		Long: `goalguessr serves a daily game of animated football goals.
Players guess the scoring team, the year and the scorer of each goal.

Configuration is read from GOALGUESSR_* environment variables, an optional
YAML file named by GOALGUESSR_CONFIG and an optional .env file.`,
		Args:              cobra.NoArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		RunE:              c.runServe,
	}
	root.PersistentFlags().StringVar(&c.envFile, "env-file", ".env", "dotenv file loaded before configuration (missing file is ignored)")

	root.AddCommand(
		c.newServeCmd(),
		c.newSeedCmd(),
		c.newValidateCmd(),
		c.newSimulateCmd(),
	)
	return root
}

// setup loads the environment and configuration, then initializes logging
// on the command's stderr.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if c.envFile != "" {
		if err := godotenv.Load(c.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", c.envFile, err)
		}
	}
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	c.cfg = cfg
	return logger.Init(
		logger.WithFormat(cfg.LogFormat),
		logger.WithLevel(cfg.LogLevel),
		logger.WithWriter(cmd.ErrOrStderr()),
	)
}

// serviceOptions maps configuration onto service options.
func (c *cli) serviceOptions() ([]service.Option, error) {
	loc, err := c.cfg.Location()
	if err != nil {
		return nil, err
	}
	return []service.Option{
		service.WithLogger(logger.Get()),
		service.WithWorkerCount(c.cfg.WorkerCount),
		service.WithQueueSize(c.cfg.QueueSize),
		service.WithDedupeSize(c.cfg.DedupeSize),
		service.WithRoundsPerDay(c.cfg.RoundsPerDay),
		service.WithDatabasePath(c.cfg.DatabasePath),
		service.WithAliasFile(c.cfg.AliasFile),
		service.WithLocation(loc),
	}, nil
}
