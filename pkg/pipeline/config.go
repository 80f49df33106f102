// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"fmt"

	"github.com/maskstream/csvmask/pkg/generator"
	"github.com/maskstream/csvmask/pkg/transformers"
)

type Config struct {
	// ColumnRules maps column names to their configured transformation.
	// Columns without a rule default to the identity transformation.
	ColumnRules map[string]Rule
	// ColumnOrder optionally reorders the output columns. It must be a
	// permutation of the input header when set.
	ColumnOrder []string
	// OnRowError selects the policy for rows whose transformation fails.
	// Defaults to aborting the run.
	OnRowError RowErrorPolicy
	// Generation optionally configures the external generation service used
	// by the redact transformation.
	Generation *generator.Config
}

type Rule struct {
	Name       transformers.TransformerType
	Parameters transformers.ParameterValues
}

type RowErrorPolicy string

const (
	// AbortOnRowError stops the run on the first failing row, identifying
	// the offending row and column.
	AbortOnRowError RowErrorPolicy = "abort"
	// SkipOnRowError drops failing rows from the output and carries on.
	SkipOnRowError RowErrorPolicy = "skip"
)

func (c *Config) rowErrorPolicy() (RowErrorPolicy, error) {
	switch c.OnRowError {
	case "":
		return AbortOnRowError, nil
	case AbortOnRowError, SkipOnRowError:
		return c.OnRowError, nil
	default:
		return "", fmt.Errorf("unknown row error policy %q", c.OnRowError)
	}
}
