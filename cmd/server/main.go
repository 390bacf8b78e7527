package main

import (
	"fmt"
	"os"

	"github.com/jengzang/neuronav-backend-go/internal/config"
	"github.com/jengzang/neuronav-backend-go/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "neuronav",
	Short: "NeuroNav backend: sensory stress scoring and reroute advice",
	Long: `NeuroNav scores routes by how sensory-demanding they are to travel,
advises when an alternative route is calmer, and collects post-trip
comfort feedback.

Configuration is read from --config (YAML) and then from the environment.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level, cfg.Log.Development)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	scoreCmd.Flags().StringVar(&scoreAggregation, "aggregation", "", "aggregation policy (mean, distance_weighted)")
	exportCmd.Flags().BoolVar(&useZstd, "zstd", false, "zstd-compress the output")
	importCmd.Flags().BoolVar(&useZstd, "zstd", false, "input is zstd-compressed")

	feedbackCmd.AddCommand(exportCmd, importCmd)
	rootCmd.AddCommand(serveCmd, scoreCmd, feedbackCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
