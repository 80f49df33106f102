// SPDX-License-Identifier: Apache-2.0

// Package builder holds the registry of available transformer types and
// builds transformer instances from configuration. Adding a transformer is
// a matter of adding a type constant and a registry entry; call sites
// enumerate and build through the registry without naming concrete types.
package builder

import (
	"fmt"
	"sort"

	"github.com/maskstream/csvmask/pkg/generator"
	loglib "github.com/maskstream/csvmask/pkg/log"
	"github.com/maskstream/csvmask/pkg/transformers"
)

type TransformerBuilder struct {
	generator generator.Generator
	logger    loglib.Logger
}

type Option func(b *TransformerBuilder)

var TransformersMap = map[transformers.TransformerType]struct {
	Definition *transformers.Definition
	BuildFn    func(b *TransformerBuilder, cfg *transformers.Config) (transformers.Transformer, error)
}{
	transformers.Identity: {
		Definition: transformers.IdentityTransformerDefinition(),
		BuildFn: func(_ *TransformerBuilder, _ *transformers.Config) (transformers.Transformer, error) {
			return transformers.NewIdentityTransformer(), nil
		},
	},
	transformers.UUIDToInt: {
		Definition: transformers.SequenceTransformerDefinition(),
		BuildFn: func(_ *TransformerBuilder, cfg *transformers.Config) (transformers.Transformer, error) {
			return transformers.NewSequenceTransformer(cfg.Parameters)
		},
	},
	transformers.Redact: {
		Definition: transformers.RedactTransformerDefinition(),
		BuildFn: func(b *TransformerBuilder, cfg *transformers.Config) (transformers.Transformer, error) {
			opts := []transformers.RedactOption{
				transformers.WithLogger(b.logger),
			}
			if b.generator != nil {
				opts = append(opts, transformers.WithGenerator(b.generator))
			}
			return transformers.NewRedactTransformer(cfg.Parameters, opts...)
		},
	},
	transformers.Masking: {
		Definition: transformers.MaskingTransformerDefinition(),
		BuildFn: func(_ *TransformerBuilder, cfg *transformers.Config) (transformers.Transformer, error) {
			return transformers.NewMaskingTransformer(cfg.Parameters)
		},
	},
	transformers.TimestampToDate: {
		Definition: transformers.TimestampTransformerDefinition(),
		BuildFn: func(_ *TransformerBuilder, _ *transformers.Config) (transformers.Transformer, error) {
			return transformers.NewTimestampTransformer(), nil
		},
	},
}

func NewTransformerBuilder(opts ...Option) *TransformerBuilder {
	b := &TransformerBuilder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// WithGenerator configures the generation service handed to transformers
// that can make use of it.
func WithGenerator(g generator.Generator) Option {
	return func(b *TransformerBuilder) {
		b.generator = g
	}
}

func WithLogger(l loglib.Logger) Option {
	return func(b *TransformerBuilder) {
		b.logger = l
	}
}

// New builds a fresh transformer instance for the given config. Stateful
// transformers do not share state between instances.
func (b *TransformerBuilder) New(cfg *transformers.Config) (transformers.Transformer, error) {
	entry, found := TransformersMap[cfg.Name]
	if !found {
		return nil, fmt.Errorf("%q: %w", cfg.Name, transformers.ErrUnsupportedTransformer)
	}
	return entry.BuildFn(b, cfg)
}

// TransformerTypes returns the registered transformer types in lexical
// order, for callers presenting the available transformations.
func TransformerTypes() []transformers.TransformerType {
	types := make([]transformers.TransformerType, 0, len(TransformersMap))
	for name := range TransformersMap {
		types = append(types, name)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// TransformerDefinition returns the parameter definition for a registered
// transformer type.
func TransformerDefinition(name transformers.TransformerType) (*transformers.Definition, error) {
	entry, found := TransformersMap[name]
	if !found {
		return nil, fmt.Errorf("%q: %w", name, transformers.ErrUnsupportedTransformer)
	}
	return entry.Definition, nil
}
