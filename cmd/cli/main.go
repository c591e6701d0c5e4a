package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/limaJavier/coursetables/internal/config"
	"github.com/limaJavier/coursetables/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	configPath string
	cfg        *config.Config
	log        zerolog.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "coursetables",
		Short: "Course timetable generator",
		Long: "coursetables enumerates every conflict-free weekly timetable that can be built\n" +
			"from a selection of courses, filtered by days off and lecturer preferences",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.LoadConfig(configPath); err != nil {
				return err
			}
			log = logger.New(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "configuration file; defaults apply when it does not exist")

	rootCmd.AddCommand(generateCommand(), exportCommand(), importCommand(), serveCommand())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
