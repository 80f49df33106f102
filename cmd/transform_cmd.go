// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/maskstream/csvmask/cmd/config"
	"github.com/maskstream/csvmask/internal/log/zerolog"
	"github.com/maskstream/csvmask/pkg/pipeline"
)

var transformCmd = &cobra.Command{
	Use:     "transform",
	Short:   "Transform applies the configured per-column transformations to the input CSV",
	PreRunE: transformFlagBinding,
	RunE:    withSignalWatcher(transform),
}

var errMissingTransformFiles = errors.New("input and output file paths are required")

func transform(ctx context.Context) error {
	logger := zerolog.NewLogger(&zerolog.Config{
		LogLevel: viper.GetString("CSVMASK_LOG_LEVEL"),
	})
	zerolog.SetGlobalLogger(logger)

	inputFile := viper.GetString("input")
	outputFile := viper.GetString("output")
	if inputFile == "" || outputFile == "" {
		return errMissingTransformFiles
	}

	pipelineConfig, err := config.ParsePipelineConfig()
	if err != nil {
		return err
	}

	opts := []pipeline.Option{}
	if viper.GetBool("verbose") {
		opts = append(opts,
			pipeline.WithLogger(zerolog.NewStdLogger(logger)),
			pipeline.WithProgressBar(),
		)
	}

	input, err := os.Open(inputFile)
	if err != nil {
		return fmt.Errorf("opening input file: %w", err)
	}
	defer input.Close()

	// The transformed table is buffered so the output file is only touched
	// once the whole run has succeeded.
	var output bytes.Buffer
	if err := pipeline.New(pipelineConfig, opts...).Run(ctx, input, &output); err != nil {
		return err
	}

	if err := os.WriteFile(outputFile, output.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}

	return nil
}

func transformFlagBinding(cmd *cobra.Command, _ []string) error {
	for _, flag := range []string{"input", "output", "rules-file", "verbose"} {
		if err := viper.BindPFlag(flag, cmd.Flags().Lookup(flag)); err != nil {
			return err
		}
	}
	return nil
}
