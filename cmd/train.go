package main

import (
	"fmt"
	"runtime"

	"bayes-go/internal/service"

	"github.com/spf13/cobra"
)

type trainOptions struct {
	dir     string
	threads int
	append  bool
}

func newTrainCmd() *cobra.Command {
	opts := &options{}
	trainOpts := &trainOptions{}

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a model from a labeled directory and save it",
		Long: `Train a model from a directory laid out as <dir>/<category>/<sample files>
and write it to the configured model path.

Examples:
  # Build a new model
  bayes-go train --dir ./corpus --model-file /var/lib/bayes/model.json

  # Add to the existing model
  bayes-go train --dir ./more --append`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			// the existing model is only merged with --append
			cfg.Persistence.LoadOnStart = trainOpts.append

			logger, err := newLogger(cfg.Logging)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer logger.Sync()

			classifier, err := newClassifier(cfg, logger)
			if err != nil {
				return err
			}

			trainer := service.NewCorpusTrainer(classifier, trainOpts.threads, cfg.App.MaxBodyBytes, logger)
			stats, err := trainer.TrainFromDirectory(cmd.Context(), trainOpts.dir)
			if err != nil {
				return err
			}

			if err := classifier.SaveToFile(cfg.Persistence.Path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "trained %d of %d files into %d categories, saved to %s\n",
				stats.Trained, stats.Files, len(classifier.Categories()), cfg.Persistence.Path)
			return nil
		},
	}

	bindFlags(cmd, opts)
	cmd.Flags().StringVar(&trainOpts.dir, "dir", "", "Corpus directory")
	cmd.Flags().IntVar(&trainOpts.threads, "threads", runtime.NumCPU(), "Number of files read in parallel")
	cmd.Flags().BoolVar(&trainOpts.append, "append", false, "Load the existing model before training")
	_ = cmd.MarkFlagRequired("dir")
	return cmd
}
