// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/maskstream/csvmask/pkg/generator"
	"github.com/maskstream/csvmask/pkg/pipeline"
)

func Load() error {
	return LoadFile(viper.GetString("config"))
}

func LoadFile(file string) error {
	if file != "" {
		viper.SetConfigFile(file)
		viper.SetConfigType(filepath.Ext(file)[1:])
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

// ParsePipelineConfig builds the pipeline configuration from the rules file
// plus any generation service settings from the environment or config file.
func ParsePipelineConfig() (*pipeline.Config, error) {
	rulesFile := viper.GetString("rules-file")
	if rulesFile == "" {
		rulesFile = viper.GetString("CSVMASK_RULES_FILE")
	}

	var cfg *pipeline.Config
	if rulesFile != "" {
		yamlCfg, err := readRulesFromFile(rulesFile)
		if err != nil {
			return nil, err
		}
		cfg, err = yamlCfg.toPipelineConfig()
		if err != nil {
			return nil, err
		}
	} else {
		cfg = &pipeline.Config{}
	}

	if gen := parseGenerationConfig(); gen != nil {
		cfg.Generation = gen
	}

	return cfg, nil
}

// parseGenerationConfig resolves the generation service settings from the
// environment, returning nil when no service is configured.
func parseGenerationConfig() *generator.Config {
	url := viper.GetString("CSVMASK_GENERATION_URL")
	if url == "" {
		return nil
	}

	var timeout time.Duration
	if timeoutStr := viper.GetString("CSVMASK_GENERATION_TIMEOUT"); timeoutStr != "" {
		// ignore the error, the generator falls back to its default timeout
		timeout, _ = time.ParseDuration(timeoutStr)
	}

	return &generator.Config{
		URL:     url,
		Model:   viper.GetString("CSVMASK_GENERATION_MODEL"),
		Timeout: timeout,
	}
}
