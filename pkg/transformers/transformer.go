// SPDX-License-Identifier: Apache-2.0

// Package transformers implements the per-value transformations that can be
// configured for table columns, along with the shared parameter handling
// they rely on. Transformer instances may carry state scoped to their own
// lifetime (see SequenceTransformer), so callers wanting isolation between
// runs must build fresh instances per run.
package transformers

import (
	"context"
	"errors"
)

type Transformer interface {
	Transform(ctx context.Context, value string) (string, error)
	Type() TransformerType
	Close() error
}

type Config struct {
	Name       TransformerType
	Parameters ParameterValues
}

type TransformerType string

const (
	Identity        TransformerType = "identity"
	UUIDToInt       TransformerType = "uuid_to_int"
	Redact          TransformerType = "redact"
	Masking         TransformerType = "mask"
	TimestampToDate TransformerType = "timestamp_to_date"
)

type ParameterValues map[string]any

// Parameter describes a single configurable setting of a transformer, used
// by callers enumerating the registry.
type Parameter struct {
	Name          string
	SupportedType string
	Default       any
	Required      bool
}

// Definition describes a transformer type for enumeration purposes.
type Definition struct {
	Parameters []Parameter
}

var (
	ErrUnsupportedTransformer = errors.New("unsupported transformer config")
	ErrInvalidParameters      = errors.New("invalid transformer parameters")
	ErrUnparseableTimestamp   = errors.New("unparseable timestamp")
)

func FindParameter[T any](params ParameterValues, name string) (T, bool, error) {
	valAny, found := params[name]
	if !found {
		return *new(T), false, nil
	}

	val, ok := valAny.(T)
	if !ok {
		return *new(T), true, ErrInvalidParameters
	}

	return val, true, nil
}

func FindParameterWithDefault[T any](params ParameterValues, name string, defaultVal T) (T, error) {
	val, found, err := FindParameter[T](params, name)
	if err != nil {
		return val, err
	}
	if !found {
		return defaultVal, nil
	}
	return val, nil
}

func FindParameterArray[T any](params ParameterValues, name string) ([]T, bool, error) {
	valAny, found := params[name]
	if !found {
		return nil, false, nil
	}

	switch val := valAny.(type) {
	case []T:
		return val, true, nil
	case []any:
		arr := make([]T, 0, len(val))
		for _, v := range val {
			typed, ok := v.(T)
			if !ok {
				return nil, true, ErrInvalidParameters
			}
			arr = append(arr, typed)
		}
		return arr, true, nil
	default:
		return nil, true, ErrInvalidParameters
	}
}
