// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/maskstream/csvmask/cmd/config"
	"github.com/maskstream/csvmask/pkg/pipeline"
)

// parent command for validation subcommands
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate different parts of the csvmask configuration",
}

var validateRulesCmd = &cobra.Command{
	Use:     "rules",
	Short:   "Validates transformation rules, optionally against an input CSV header",
	PreRunE: validateRulesFlagBinding,
	RunE: func(cmd *cobra.Command, args []string) error {
		sp, _ := pterm.DefaultSpinner.WithText("validating csvmask transformation rules...").Start()

		err := func() error {
			pipelineConfig, err := config.ParsePipelineConfig()
			if err != nil {
				return fmt.Errorf("parsing pipeline config: %w", err)
			}

			if len(pipelineConfig.ColumnRules) == 0 && len(pipelineConfig.ColumnOrder) == 0 {
				sp.Success("no transformation rules to validate")
				return nil
			}

			p := pipeline.New(pipelineConfig)

			inputFile := viper.GetString("input")
			if inputFile == "" {
				if err := p.ValidateRules(); err != nil {
					return err
				}
				sp.Success("transformation rules are valid")
				return nil
			}

			input, err := os.Open(inputFile)
			if err != nil {
				return fmt.Errorf("opening input file: %w", err)
			}
			defer input.Close()

			if err := p.Validate(input); err != nil {
				return err
			}

			sp.Success("transformation rules are valid for the input table")
			return nil
		}()
		if err != nil {
			sp.Fail(err.Error())
			return err
		}

		return nil
	},
}

func validateRulesFlagBinding(cmd *cobra.Command, _ []string) error {
	for _, flag := range []string{"rules-file", "input"} {
		if err := viper.BindPFlag(flag, cmd.Flags().Lookup(flag)); err != nil {
			return err
		}
	}
	return nil
}
