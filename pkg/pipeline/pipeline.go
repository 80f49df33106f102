// SPDX-License-Identifier: Apache-2.0

// Package pipeline wires the table codec, the transformer registry and the
// optional generation service into a single-pass batch run.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/maskstream/csvmask/internal/progress"
	"github.com/maskstream/csvmask/pkg/generator"
	loglib "github.com/maskstream/csvmask/pkg/log"
	"github.com/maskstream/csvmask/pkg/tabular"
	"github.com/maskstream/csvmask/pkg/transformers"
	"github.com/maskstream/csvmask/pkg/transformers/builder"
)

// Pipeline transforms a table row by row, sequentially, applying each
// column's configured transformation. Configuration errors (unknown
// transformation kinds, invalid column order) are surfaced before any
// output is produced. Transformer state is scoped to a single Run call.
type Pipeline struct {
	config   *Config
	logger   loglib.Logger
	progress bool

	newGenerator func(cfg *generator.Config) (generator.Generator, error)
}

type Option func(p *Pipeline)

func New(config *Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		config: config,
		logger: loglib.NewNoopLogger(),
		newGenerator: func(cfg *generator.Config) (generator.Generator, error) {
			return generator.NewHTTPGenerator(cfg)
		},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func WithLogger(l loglib.Logger) Option {
	return func(p *Pipeline) {
		p.logger = loglib.NewLogger(l).WithFields(loglib.Fields{
			loglib.ModuleField: "pipeline",
		})
	}
}

// WithProgressBar enables a row progress bar on stderr.
func WithProgressBar() Option {
	return func(p *Pipeline) {
		p.progress = true
	}
}

// WithGeneratorFactory overrides how the generation client is built from
// its config. Used in tests.
func WithGeneratorFactory(fn func(cfg *generator.Config) (generator.Generator, error)) Option {
	return func(p *Pipeline) {
		p.newGenerator = fn
	}
}

// Run reads a table from r, transforms it and writes the result to w. The
// output is written only once every row has been transformed, so a failed
// run produces no partial output.
func (p *Pipeline) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	onRowError, err := p.config.rowErrorPolicy()
	if err != nil {
		return err
	}

	table, err := tabular.Read(r)
	if err != nil {
		return fmt.Errorf("reading input table: %w", err)
	}

	if err := p.validate(table); err != nil {
		return err
	}

	columnTransformers, err := p.buildTransformers()
	if err != nil {
		return err
	}
	defer closeTransformers(p.logger, columnTransformers)

	p.logger.Info("transforming table", loglib.Fields{
		"rows":    len(table.Rows),
		"columns": len(table.Columns),
	})

	if err := p.transformRows(ctx, table, columnTransformers, onRowError); err != nil {
		return err
	}

	if err := table.Reorder(p.config.ColumnOrder); err != nil {
		return err
	}

	if err := table.Write(w); err != nil {
		return fmt.Errorf("writing output table: %w", err)
	}

	return nil
}

// Validate checks the pipeline configuration against the input table header
// without transforming anything. It exercises the same checks Run performs
// before producing output, including building every configured transformer.
func (p *Pipeline) Validate(r io.Reader) error {
	if _, err := p.config.rowErrorPolicy(); err != nil {
		return err
	}

	table, err := tabular.Read(r)
	if err != nil {
		return fmt.Errorf("reading input table: %w", err)
	}

	if err := p.validate(table); err != nil {
		return err
	}

	return p.ValidateRules()
}

// ValidateRules checks that every configured rule resolves in the registry
// and builds with its parameters. It does not need the input table.
func (p *Pipeline) ValidateRules() error {
	columnTransformers, err := p.buildTransformers()
	if err != nil {
		return err
	}
	closeTransformers(p.logger, columnTransformers)
	return nil
}

// validate surfaces configuration errors before any row is transformed.
func (p *Pipeline) validate(table *tabular.Table) error {
	columns := make(map[string]struct{}, len(table.Columns))
	for _, col := range table.Columns {
		columns[col] = struct{}{}
	}

	for col, rule := range p.config.ColumnRules {
		if _, found := columns[col]; !found {
			return fmt.Errorf("transformation configured for column %q not present in the input table", col)
		}
		if _, found := builder.TransformersMap[rule.Name]; !found {
			return fmt.Errorf("column %q: %q: %w", col, rule.Name, transformers.ErrUnsupportedTransformer)
		}
	}

	return table.ValidateOrder(p.config.ColumnOrder)
}

// buildTransformers creates fresh transformer instances for this run, so
// stateful transformations (identifier sequences) never leak across runs.
func (p *Pipeline) buildTransformers() (map[string]transformers.Transformer, error) {
	builderOpts := []builder.Option{
		builder.WithLogger(p.logger),
	}

	if p.config.Generation != nil && p.config.Generation.URL != "" && p.usesGeneration() {
		gen, err := p.newGenerator(p.config.Generation)
		if err != nil {
			return nil, fmt.Errorf("creating generation client: %w", err)
		}
		builderOpts = append(builderOpts, builder.WithGenerator(gen))
	}

	b := builder.NewTransformerBuilder(builderOpts...)

	// A single identifier sequence is shared by every uuid_to_int column,
	// so the assigned integers follow first-seen order across the whole
	// table and cross-column references stay consistent.
	var sequence transformers.Transformer
	var sequenceStart int

	columnTransformers := make(map[string]transformers.Transformer, len(p.config.ColumnRules))
	for col, rule := range p.config.ColumnRules {
		if rule.Name == transformers.UUIDToInt {
			start, err := transformers.FindParameterWithDefault(rule.Parameters, "start", 1)
			if err != nil {
				return nil, fmt.Errorf("column %q: start must be an integer: %w", col, err)
			}
			if sequence == nil {
				t, err := b.New(&transformers.Config{
					Name:       rule.Name,
					Parameters: rule.Parameters,
				})
				if err != nil {
					return nil, fmt.Errorf("column %q: %w", col, err)
				}
				sequence, sequenceStart = t, start
			} else if start != sequenceStart {
				return nil, fmt.Errorf("column %q: uuid_to_int start must match across columns sharing the identifier sequence", col)
			}
			columnTransformers[col] = sequence
			continue
		}

		t, err := b.New(&transformers.Config{
			Name:       rule.Name,
			Parameters: rule.Parameters,
		})
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col, err)
		}
		columnTransformers[col] = t
	}

	return columnTransformers, nil
}

// usesGeneration reports whether any configured rule can consult the
// generation service, so no client is built for runs that would never use
// it.
func (p *Pipeline) usesGeneration() bool {
	for _, rule := range p.config.ColumnRules {
		if rule.Name == transformers.Redact {
			return true
		}
	}
	return false
}

func (p *Pipeline) transformRows(ctx context.Context, table *tabular.Table, columnTransformers map[string]transformers.Transformer, onRowError RowErrorPolicy) error {
	bar := p.newProgressBar(len(table.Rows))
	defer bar.Close()

	transformedRows := make([][]string, 0, len(table.Rows))
	skipped := 0
	for rowIdx, row := range table.Rows {
		transformedRow, err := p.transformRow(ctx, table.Columns, row, columnTransformers)
		if err != nil {
			if onRowError == SkipOnRowError {
				skipped++
				p.logger.Warn(err, "skipping row", loglib.Fields{"row": rowIdx + 1})
				if err := bar.Add(1); err != nil {
					p.logger.Debug("updating progress bar: " + err.Error())
				}
				continue
			}
			return fmt.Errorf("row %d: %w", rowIdx+1, err)
		}
		transformedRows = append(transformedRows, transformedRow)
		if err := bar.Add(1); err != nil {
			p.logger.Debug("updating progress bar: " + err.Error())
		}
	}

	if skipped > 0 {
		p.logger.Info("rows skipped", loglib.Fields{"skipped": skipped})
	}

	table.Rows = transformedRows
	return nil
}

// transformRow applies the configured transformations in header column
// order, building a new row of the same arity.
func (p *Pipeline) transformRow(ctx context.Context, columns []string, row []string, columnTransformers map[string]transformers.Transformer) ([]string, error) {
	transformed := make([]string, len(row))
	for i, col := range columns {
		t, found := columnTransformers[col]
		if !found {
			transformed[i] = row[i]
			continue
		}

		value, err := t.Transform(ctx, row[i])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col, err)
		}
		transformed[i] = value
	}
	return transformed, nil
}

func (p *Pipeline) newProgressBar(totalRows int) progress.Bar {
	if !p.progress {
		return progress.NoopBar{}
	}
	return progress.NewRowsBar(totalRows, "transforming rows...")
}

func closeTransformers(logger loglib.Logger, columnTransformers map[string]transformers.Transformer) {
	closed := make(map[transformers.Transformer]struct{}, len(columnTransformers))
	for _, t := range columnTransformers {
		if _, done := closed[t]; done {
			continue
		}
		closed[t] = struct{}{}
		if err := t.Close(); err != nil {
			logger.Error(err, "closing transformer")
		}
	}
}
