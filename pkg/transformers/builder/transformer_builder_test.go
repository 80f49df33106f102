// SPDX-License-Identifier: Apache-2.0

package builder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maskstream/csvmask/pkg/generator"
	generatormocks "github.com/maskstream/csvmask/pkg/generator/mocks"
	"github.com/maskstream/csvmask/pkg/transformers"
)

func Test_TransformerBuilder_New(t *testing.T) {
	t.Parallel()

	b := NewTransformerBuilder()

	t.Run("builds every registered type", func(t *testing.T) {
		t.Parallel()

		for name := range TransformersMap {
			tr, err := b.New(&transformers.Config{Name: name})
			require.NoError(t, err, "building %s", name)
			require.Equal(t, name, tr.Type())
			require.NoError(t, tr.Close())
		}
	})

	t.Run("error - unknown transformer type", func(t *testing.T) {
		t.Parallel()

		_, err := b.New(&transformers.Config{Name: "rot13"})
		require.ErrorIs(t, err, transformers.ErrUnsupportedTransformer)
	})

	t.Run("error - invalid parameters surface at build time", func(t *testing.T) {
		t.Parallel()

		_, err := b.New(&transformers.Config{
			Name:       transformers.UUIDToInt,
			Parameters: transformers.ParameterValues{"start": "one"},
		})
		require.ErrorIs(t, err, transformers.ErrInvalidParameters)
	})

	t.Run("stateful transformers are built fresh", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()

		tr1, err := b.New(&transformers.Config{Name: transformers.UUIDToInt})
		require.NoError(t, err)
		tr2, err := b.New(&transformers.Config{Name: transformers.UUIDToInt})
		require.NoError(t, err)

		_, err = tr1.Transform(ctx, "first-id")
		require.NoError(t, err)
		got, err := tr2.Transform(ctx, "second-id")
		require.NoError(t, err)
		require.Equal(t, "1", got)
	})

	t.Run("generator is wired into the redact transformer", func(t *testing.T) {
		t.Parallel()

		gen := &generatormocks.Generator{
			GenerateFn: func(_ context.Context, _ generator.Kind) (string, error) {
				return "Jamie Rivers", nil
			},
		}

		b := NewTransformerBuilder(WithGenerator(gen))
		tr, err := b.New(&transformers.Config{Name: transformers.Redact})
		require.NoError(t, err)
		defer tr.Close()

		got, err := tr.Transform(context.Background(), "Ashley Hernandez")
		require.NoError(t, err)
		require.Equal(t, "Jamie Rivers", got)
	})
}

func Test_TransformerTypes(t *testing.T) {
	t.Parallel()

	types := TransformerTypes()
	require.Equal(t, []transformers.TransformerType{
		transformers.Identity,
		transformers.Masking,
		transformers.Redact,
		transformers.TimestampToDate,
		transformers.UUIDToInt,
	}, types)
}

func Test_TransformerDefinition(t *testing.T) {
	t.Parallel()

	def, err := TransformerDefinition(transformers.Redact)
	require.NoError(t, err)
	require.NotEmpty(t, def.Parameters)

	_, err = TransformerDefinition("rot13")
	require.ErrorIs(t, err, transformers.ErrUnsupportedTransformer)
}
