package trainer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"priced/internal/common/fsutil"
	"priced/internal/model"
)

// BuildRootCmd constructs the trainer command tree.
func BuildRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "trainer",
		Short:         "Train and inspect the car price model",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug|info|warn|error")

	newLogger := func() zerolog.Logger {
		lvl, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			lvl = zerolog.InfoLevel
		}
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
	}

	opts := Options{}
	train := &cobra.Command{
		Use:     "train",
		Short:   "Fit the price forest on the dataset and write the artifact",
		Example: "  trainer train\n  trainer train --data ./data/cars.csv --out ./models/car_price.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := Run(opts, newLogger())
			return err
		},
	}
	train.Flags().StringVar(&opts.DataPath, "data", "./data/cars.csv", "Training dataset CSV")
	train.Flags().StringVar(&opts.OutPath, "out", "./models/car_price.json", "Artifact output path")
	train.Flags().IntVar(&opts.Trees, "trees", 200, "Number of trees in the forest")
	train.Flags().IntVar(&opts.MaxDepth, "max-depth", 12, "Maximum tree depth")
	train.Flags().IntVar(&opts.MinLeaf, "min-leaf", 2, "Minimum samples per leaf")
	train.Flags().Float64Var(&opts.Holdout, "holdout", 0.2, "Holdout fraction for evaluation")
	train.Flags().Int64Var(&opts.Seed, "seed", 42, "Random seed")
	root.AddCommand(train)

	var modelPath string
	inspect := &cobra.Command{
		Use:     "inspect",
		Short:   "Print metadata of a trained artifact",
		Example: "  trainer inspect --model ./models/car_price.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := fsutil.ExpandHome(modelPath)
			if err != nil {
				return err
			}
			art, err := model.LoadArtifact(path)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(struct {
				Meta          model.Metadata `json:"meta"`
				SchemaVersion int            `json:"schema_version"`
				Columns       []model.Field  `json:"columns"`
				Trees         int            `json:"trees"`
			}{art.Meta, art.SchemaVersion, art.Columns, len(art.Forest.Trees)}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	inspect.Flags().StringVar(&modelPath, "model", "./models/car_price.json", "Artifact path")
	root.AddCommand(inspect)

	return root
}
