// SPDX-License-Identifier: Apache-2.0

package transformers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maskstream/csvmask/pkg/generator"
	generatormocks "github.com/maskstream/csvmask/pkg/generator/mocks"
	loglib "github.com/maskstream/csvmask/pkg/log"
	logmocks "github.com/maskstream/csvmask/pkg/log/mocks"
)

func Test_NewRedactTransformer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params ParameterValues

		wantErr error
	}{
		{
			name:   "ok - defaults",
			params: nil,

			wantErr: nil,
		},
		{
			name: "ok - custom domains and lengths",
			params: ParameterValues{
				"email_domains": []string{"masked.example"},
				"min_length":    3,
				"max_length":    6,
			},

			wantErr: nil,
		},
		{
			name: "error - invalid email_domains",
			params: ParameterValues{
				"email_domains": "masked.example",
			},

			wantErr: ErrInvalidParameters,
		},
		{
			name: "error - invalid min_length",
			params: ParameterValues{
				"min_length": "three",
			},

			wantErr: ErrInvalidParameters,
		},
		{
			name: "error - invalid max_length",
			params: ParameterValues{
				"max_length": 10.5,
			},

			wantErr: ErrInvalidParameters,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewRedactTransformer(tc.params)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func Test_RedactTransformer_Transform(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("name values become synthetic full names", func(t *testing.T) {
		t.Parallel()

		rt, err := NewRedactTransformer(nil)
		require.NoError(t, err)
		defer rt.Close()

		got, err := rt.Transform(ctx, "Ashley Hernandez")
		require.NoError(t, err)
		require.NotEqual(t, "Ashley Hernandez", got)
		require.NotContains(t, got, "@")
		require.GreaterOrEqual(t, len(strings.Fields(got)), 2)
	})

	t.Run("email values become synthetic emails", func(t *testing.T) {
		t.Parallel()

		rt, err := NewRedactTransformer(nil)
		require.NoError(t, err)
		defer rt.Close()

		got, err := rt.Transform(ctx, "ashley.hernandez@live.com")
		require.NoError(t, err)
		require.NotEqual(t, "ashley.hernandez@live.com", got)

		localPart, domain, found := strings.Cut(got, "@")
		require.True(t, found)
		require.GreaterOrEqual(t, len(localPart), defaultMinLocalPartLength)
		require.LessOrEqual(t, len(localPart), defaultMaxLocalPartLength)
		require.Regexp(t, "^[a-z]+$", localPart)
		require.Contains(t, defaultEmailDomains, domain)
	})

	t.Run("custom email domain pool is honored", func(t *testing.T) {
		t.Parallel()

		rt, err := NewRedactTransformer(ParameterValues{
			"email_domains": []string{"masked.example"},
		})
		require.NoError(t, err)
		defer rt.Close()

		got, err := rt.Transform(ctx, "someone@live.com")
		require.NoError(t, err)
		require.True(t, strings.HasSuffix(got, "@masked.example"))
	})

	t.Run("generation service output is preferred", func(t *testing.T) {
		t.Parallel()

		gen := &generatormocks.Generator{
			GenerateFn: func(_ context.Context, kind generator.Kind) (string, error) {
				switch kind {
				case generator.Name:
					return "Jamie Rivers", nil
				case generator.Email:
					return "Jamie.Rivers@demo.net", nil
				}
				return "", generator.ErrUnsupportedKind
			},
		}

		rt, err := NewRedactTransformer(nil, WithGenerator(gen))
		require.NoError(t, err)
		defer rt.Close()

		gotName, err := rt.Transform(ctx, "Ashley Hernandez")
		require.NoError(t, err)
		require.Equal(t, "Jamie Rivers", gotName)

		gotEmail, err := rt.Transform(ctx, "ashley.hernandez@live.com")
		require.NoError(t, err)
		require.Equal(t, "jamie.rivers@demo.net", gotEmail)
	})

	t.Run("generation service failure falls back to random generation", func(t *testing.T) {
		t.Parallel()

		gen := &generatormocks.Generator{
			GenerateFn: func(_ context.Context, _ generator.Kind) (string, error) {
				return "", generator.ErrGeneratorUnavailable
			},
		}

		rt, err := NewRedactTransformer(nil, WithGenerator(gen))
		require.NoError(t, err)
		defer rt.Close()

		gotName, err := rt.Transform(ctx, "Ashley Hernandez")
		require.NoError(t, err)
		require.NotEqual(t, "Ashley Hernandez", gotName)
		require.NotContains(t, gotName, "@")

		gotEmail, err := rt.Transform(ctx, "ashley.hernandez@live.com")
		require.NoError(t, err)
		require.NotEqual(t, "ashley.hernandez@live.com", gotEmail)
		require.Contains(t, gotEmail, "@")
	})

	t.Run("generation output equal to the input falls back to random generation", func(t *testing.T) {
		t.Parallel()

		gen := &generatormocks.Generator{
			GenerateFn: func(_ context.Context, kind generator.Kind) (string, error) {
				switch kind {
				case generator.Name:
					return "Ashley Hernandez", nil
				case generator.Email:
					return "ashley.hernandez@live.com", nil
				}
				return "", generator.ErrUnsupportedKind
			},
		}

		rt, err := NewRedactTransformer(nil, WithGenerator(gen))
		require.NoError(t, err)
		defer rt.Close()

		gotName, err := rt.Transform(ctx, "Ashley Hernandez")
		require.NoError(t, err)
		require.NotEqual(t, "Ashley Hernandez", gotName)

		gotEmail, err := rt.Transform(ctx, "ashley.hernandez@live.com")
		require.NoError(t, err)
		require.NotEqual(t, "ashley.hernandez@live.com", gotEmail)
	})

	t.Run("malformed generation output falls back to random generation", func(t *testing.T) {
		t.Parallel()

		gen := &generatormocks.Generator{
			GenerateFn: func(_ context.Context, _ generator.Kind) (string, error) {
				// a name with an @ would be misclassified downstream
				return "jamie@rivers", nil
			},
		}

		var warnErr error
		logger := &logmocks.Logger{
			WarnFn: func(err error, _ string, _ ...loglib.Fields) {
				warnErr = err
			},
		}

		rt, err := NewRedactTransformer(nil, WithGenerator(gen), WithLogger(logger))
		require.NoError(t, err)
		defer rt.Close()

		gotName, err := rt.Transform(ctx, "Ashley Hernandez")
		require.NoError(t, err)
		require.NotContains(t, gotName, "@")
		require.ErrorIs(t, warnErr, errMalformedGeneration)
	})

	t.Run("closing the transformer closes the generation client", func(t *testing.T) {
		t.Parallel()

		closed := false
		gen := &generatormocks.Generator{
			GenerateFn: func(_ context.Context, _ generator.Kind) (string, error) {
				return "", errors.New("unavailable")
			},
			CloseFn: func() error {
				closed = true
				return nil
			},
		}

		rt, err := NewRedactTransformer(nil, WithGenerator(gen))
		require.NoError(t, err)
		require.NoError(t, rt.Close())
		require.True(t, closed)
	})
}
