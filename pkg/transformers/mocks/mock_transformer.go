// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"context"

	"github.com/maskstream/csvmask/pkg/transformers"
)

type Transformer struct {
	TransformFn func(ctx context.Context, value string) (string, error)
	CloseFn     func() error
}

func (m *Transformer) Transform(ctx context.Context, value string) (string, error) {
	return m.TransformFn(ctx, value)
}

func (m *Transformer) Type() transformers.TransformerType {
	return "mock"
}

func (m *Transformer) Close() error {
	if m.CloseFn != nil {
		return m.CloseFn()
	}
	return nil
}
