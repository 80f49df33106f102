// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"context"

	"github.com/maskstream/csvmask/pkg/generator"
)

type Generator struct {
	GenerateFn func(ctx context.Context, kind generator.Kind) (string, error)
	CloseFn    func() error
}

func (m *Generator) Generate(ctx context.Context, kind generator.Kind) (string, error) {
	return m.GenerateFn(ctx, kind)
}

func (m *Generator) Close() error {
	if m.CloseFn != nil {
		return m.CloseFn()
	}
	return nil
}
