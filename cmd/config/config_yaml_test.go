// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/maskstream/csvmask/pkg/pipeline"
	"github.com/maskstream/csvmask/pkg/transformers"
)

func Test_ParsePipelineConfig_YAML(t *testing.T) {
	yamlRules := `
transformations:
  column_transformers:
    user_id:
      name: uuid_to_int
      parameters:
        start: 100
    name:
      name: redact
    last_login:
      name: timestamp_to_date
  column_order:
    - name
    - user_id
    - last_login
  on_row_error: skip
generation:
  url: http://localhost:9009
  model: fake-mini
  timeout: 5s
`
	rulesFile := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(rulesFile, []byte(yamlRules), 0o600))

	t.Setenv("CSVMASK_RULES_FILE", rulesFile)

	cfg, err := ParsePipelineConfig()
	require.NoError(t, err)

	require.Equal(t, map[string]pipeline.Rule{
		"user_id": {
			Name:       transformers.UUIDToInt,
			Parameters: transformers.ParameterValues{"start": 100},
		},
		"name":       {Name: transformers.Redact},
		"last_login": {Name: transformers.TimestampToDate},
	}, cfg.ColumnRules)
	require.Equal(t, []string{"name", "user_id", "last_login"}, cfg.ColumnOrder)
	require.Equal(t, pipeline.SkipOnRowError, cfg.OnRowError)

	require.NotNil(t, cfg.Generation)
	require.Equal(t, "http://localhost:9009", cfg.Generation.URL)
	require.Equal(t, "fake-mini", cfg.Generation.Model)
	require.Equal(t, 5*time.Second, cfg.Generation.Timeout)
}

func Test_ParsePipelineConfig_Env(t *testing.T) {
	t.Setenv("CSVMASK_RULES_FILE", "")
	t.Setenv("CSVMASK_GENERATION_URL", "http://localhost:9010")
	t.Setenv("CSVMASK_GENERATION_MODEL", "fake-large")
	t.Setenv("CSVMASK_GENERATION_TIMEOUT", "2s")

	cfg, err := ParsePipelineConfig()
	require.NoError(t, err)

	require.Empty(t, cfg.ColumnRules)
	require.NotNil(t, cfg.Generation)
	require.Equal(t, "http://localhost:9010", cfg.Generation.URL)
	require.Equal(t, "fake-large", cfg.Generation.Model)
	require.Equal(t, 2*time.Second, cfg.Generation.Timeout)
}

func Test_ParsePipelineConfig_Errors(t *testing.T) {
	t.Run("missing rules file", func(t *testing.T) {
		t.Setenv("CSVMASK_RULES_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

		_, err := ParsePipelineConfig()
		require.Error(t, err)
	})

	t.Run("malformed rules file", func(t *testing.T) {
		rulesFile := filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(rulesFile, []byte("transformations: ["), 0o600))
		t.Setenv("CSVMASK_RULES_FILE", rulesFile)

		_, err := ParsePipelineConfig()
		require.Error(t, err)
	})

	t.Run("invalid generation timeout", func(t *testing.T) {
		yamlRules := `
generation:
  url: http://localhost:9009
  timeout: soon
`
		rulesFile := filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(rulesFile, []byte(yamlRules), 0o600))
		t.Setenv("CSVMASK_RULES_FILE", rulesFile)

		_, err := ParsePipelineConfig()
		require.Error(t, err)
	})
}
