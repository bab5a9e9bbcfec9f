package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Ramsey-B/fern/pkg/codec"
	"github.com/Ramsey-B/fern/pkg/frame"
	"github.com/Ramsey-B/fern/pkg/steps"
	"github.com/spf13/cobra"
)

func newPrepCmd() *cobra.Command {
	var specPath, dataPath, outPath string
	var outcomes []string

	cmd := &cobra.Command{
		Use:   "prep",
		Short: "Train a step document on a CSV file",
		Example: `  fern prep --spec impute.yaml --data training.csv --out impute.trained.json
  fern prep --spec spline.json --data training.csv --outcome y`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := codec.ReadDocument(specPath)
			if err != nil {
				return err
			}

			step, err := steps.FromDocument(doc)
			if err != nil {
				return err
			}

			training, err := readFrame(dataPath)
			if err != nil {
				return err
			}

			trained, err := step.Prep(training, training.Info(outcomes...))
			if err != nil {
				return err
			}

			if outPath == "" {
				data, err := codec.Marshal(steps.ToDocument(trained), codec.FormatFromPath(specPath))
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return codec.WriteDocument(outPath, steps.ToDocument(trained))
		},
	}

	cmd.Flags().StringVar(&specPath, "spec", "", "untrained step document (json or yaml)")
	cmd.Flags().StringVar(&dataPath, "data", "", "training CSV")
	cmd.Flags().StringVar(&outPath, "out", "", "where to write the trained document, stdout if empty")
	cmd.Flags().StringSliceVar(&outcomes, "outcome", nil, "columns with the outcome role")
	_ = cmd.MarkFlagRequired("spec")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func newBakeCmd() *cobra.Command {
	var stepPath, dataPath, outPath string

	cmd := &cobra.Command{
		Use:   "bake",
		Short: "Apply a trained step document to a CSV file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			step, err := codec.LoadStep(stepPath)
			if err != nil {
				return err
			}

			data, err := readFrame(dataPath)
			if err != nil {
				return err
			}
			if data, err = steps.TypeInputs(step, data); err != nil {
				return err
			}

			baked, err := steps.Apply(step, data)
			if err != nil {
				return err
			}

			return writeFrame(cmd.OutOrStdout(), outPath, baked)
		},
	}

	cmd.Flags().StringVar(&stepPath, "step", "", "trained step document")
	cmd.Flags().StringVar(&dataPath, "data", "", "CSV to bake")
	cmd.Flags().StringVar(&outPath, "out", "", "where to write the baked CSV, stdout if empty")
	_ = cmd.MarkFlagRequired("step")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func newTidyCmd() *cobra.Command {
	var stepPath string

	cmd := &cobra.Command{
		Use:   "tidy",
		Short: "Print a step's tidy report as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			step, err := codec.LoadStep(stepPath)
			if err != nil {
				return err
			}
			return frame.WriteCSV(cmd.OutOrStdout(), step.Tidy())
		},
	}

	cmd.Flags().StringVar(&stepPath, "step", "", "step document, trained or not")
	_ = cmd.MarkFlagRequired("step")

	return cmd
}

func readFrame(path string) (*frame.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data: %w", err)
	}
	defer f.Close()

	return frame.ReadCSV(f)
}

func writeFrame(stdout io.Writer, path string, data *frame.Frame) error {
	if path == "" {
		return frame.WriteCSV(stdout, data)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer f.Close()

	return frame.WriteCSV(f, data)
}
