// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/maskstream/csvmask/pkg/transformers/builder"
)

var transformationsCmd = &cobra.Command{
	Use:   "transformations",
	Short: "Transformations lists the available transformations and their parameters",
	RunE: func(cmd *cobra.Command, args []string) error {
		tableData := pterm.TableData{
			{"transformation", "parameter", "type", "default", "required"},
		}

		for _, name := range builder.TransformerTypes() {
			def, err := builder.TransformerDefinition(name)
			if err != nil {
				return err
			}

			if len(def.Parameters) == 0 {
				tableData = append(tableData, []string{string(name), "-", "-", "-", "-"})
				continue
			}
			for _, param := range def.Parameters {
				tableData = append(tableData, []string{
					string(name),
					param.Name,
					param.SupportedType,
					fmt.Sprintf("%v", param.Default),
					fmt.Sprintf("%t", param.Required),
				})
			}
		}

		return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
	},
}
