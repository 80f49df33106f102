// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/maskstream/csvmask/pkg/generator"
	"github.com/maskstream/csvmask/pkg/pipeline"
	"github.com/maskstream/csvmask/pkg/transformers"
)

type YAMLConfig struct {
	Transformations TransformationsConfig `yaml:"transformations"`
	Generation      *GenerationConfig     `yaml:"generation"`
}

type TransformationsConfig struct {
	ColumnTransformers map[string]TransformerRules `yaml:"column_transformers"`
	ColumnOrder        []string                    `yaml:"column_order"`
	OnRowError         string                      `yaml:"on_row_error"`
}

type TransformerRules struct {
	Name       string         `yaml:"name"`
	Parameters map[string]any `yaml:"parameters"`
}

type GenerationConfig struct {
	URL     string `yaml:"url"`
	Model   string `yaml:"model"`
	Timeout string `yaml:"timeout"`
}

func readRulesFromFile(filePath string) (*YAMLConfig, error) {
	yamlFile, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading rules from file: %w", err)
	}

	cfg := &YAMLConfig{}
	if err := yaml.Unmarshal(yamlFile, cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling yaml file into transformation rules: %w", err)
	}
	return cfg, nil
}

func (c *YAMLConfig) toPipelineConfig() (*pipeline.Config, error) {
	columnRules := make(map[string]pipeline.Rule, len(c.Transformations.ColumnTransformers))
	for col, rules := range c.Transformations.ColumnTransformers {
		columnRules[col] = pipeline.Rule{
			Name:       transformers.TransformerType(rules.Name),
			Parameters: rules.Parameters,
		}
	}

	cfg := &pipeline.Config{
		ColumnRules: columnRules,
		ColumnOrder: c.Transformations.ColumnOrder,
		OnRowError:  pipeline.RowErrorPolicy(c.Transformations.OnRowError),
	}

	if c.Generation != nil {
		genCfg := &generator.Config{
			URL:   c.Generation.URL,
			Model: c.Generation.Model,
		}
		if c.Generation.Timeout != "" {
			timeout, err := time.ParseDuration(c.Generation.Timeout)
			if err != nil {
				return nil, fmt.Errorf("parsing generation timeout: %w", err)
			}
			genCfg.Timeout = timeout
		}
		cfg.Generation = genCfg
	}

	return cfg, nil
}
