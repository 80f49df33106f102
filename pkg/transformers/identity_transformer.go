// SPDX-License-Identifier: Apache-2.0

package transformers

import "context"

// IdentityTransformer passes values through unchanged. It is the default for
// columns without a configured transformation.
type IdentityTransformer struct{}

func NewIdentityTransformer() *IdentityTransformer {
	return &IdentityTransformer{}
}

func (it *IdentityTransformer) Transform(_ context.Context, value string) (string, error) {
	return value, nil
}

func (it *IdentityTransformer) Type() TransformerType {
	return Identity
}

func (it *IdentityTransformer) Close() error {
	return nil
}

func IdentityTransformerDefinition() *Definition {
	return &Definition{}
}
