// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/maskstream/csvmask/internal/json"
	"github.com/maskstream/csvmask/pkg/transformers"
	"github.com/maskstream/csvmask/pkg/transformers/builder"
)

type Result struct {
	Name         string        `json:"name"`
	Transformers []Transformer `json:"transformers"`
}

type Transformer struct {
	Name       string      `json:"name"`
	Parameters []Parameter `json:"parameters"`
}

type Parameter struct {
	Name          string `json:"name"`
	SupportedType string `json:"supported_type"`
	Default       any    `json:"default"`
	Required      bool   `json:"required"`
}

func main() {
	log.Println("Generating transformers JSON definition...")

	result := Result{
		Name:         "transformers",
		Transformers: extractTransformers(),
	}

	if err := writeJSONToFile("transformers-definition.json", result); err != nil {
		log.Fatalf("failed to write JSON to file: %v", err)
	}

	log.Println("Transformers JSON definition generated successfully")
}

func extractTransformers() []Transformer {
	// Sort the keys to ensure consistent ordering
	keys := make([]string, 0, len(builder.TransformersMap))
	for trName := range builder.TransformersMap {
		keys = append(keys, string(trName))
	}
	sort.Strings(keys)

	transformersList := make([]Transformer, 0, len(keys))
	for _, trName := range keys {
		definition := builder.TransformersMap[transformers.TransformerType(trName)].Definition
		transformersList = append(transformersList, Transformer{
			Name:       trName,
			Parameters: extractParameters(definition.Parameters),
		})
	}

	return transformersList
}

func extractParameters(params []transformers.Parameter) []Parameter {
	parameters := make([]Parameter, 0, len(params))
	for _, param := range params {
		parameters = append(parameters, Parameter{
			Name:          param.Name,
			SupportedType: param.SupportedType,
			Default:       param.Default,
			Required:      param.Required,
		})
	}
	return parameters
}

func writeJSONToFile(filename string, data any) error {
	bytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal definition: %w", err)
	}

	if err := os.WriteFile(filename, bytes, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
