package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bayes-go/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

type options struct {
	configPath string
	host       string
	port       int
	authToken  string
	modelFile  string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "bayes-go",
		Short: "Naive-Bayes text classification server",
		Long: `bayes-go trains and queries an in-memory naive-Bayes text classifier over HTTP.

Configuration is read from defaults, then the --config YAML file, then
SIMPLEBAYES_* environment variables, then command line flags.

Examples:
  # Listen on localhost:9000 and require a bearer token
  bayes-go --host 127.0.0.1 --port 9000 --auth-token secret

  # Use a config file
  bayes-go --config app.yaml`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServer(ctx, cfg)
		},
	}

	bindFlags(rootCmd, opts)
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newTrainCmd())
	rootCmd.SetContext(context.Background())
	return rootCmd
}

func bindFlags(cmd *cobra.Command, opts *options) {
	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "Path to YAML configuration file")
	flags.StringVar(&opts.host, "host", "0.0.0.0", "Host interface to bind")
	flags.IntVar(&opts.port, "port", 8000, "Port to bind")
	flags.StringVar(&opts.authToken, "auth-token", "", "Require this bearer token on API routes")
	flags.StringVar(&opts.modelFile, "model-file", "", "Absolute path of the persisted model")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// loadConfig layers explicitly set flags over config.LoadConfig
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.App.Host = opts.host
	}
	if flags.Changed("port") {
		cfg.App.Port = opts.port
	}
	if flags.Changed("auth-token") {
		cfg.App.AuthToken = opts.authToken
	}
	if flags.Changed("model-file") {
		cfg.Persistence.Path = opts.modelFile
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
