// SPDX-License-Identifier: Apache-2.0

package transformers

import (
	"context"
	"fmt"
	"strconv"
)

// SequenceTransformer replaces identifier strings with sequential integers,
// assigned in first-seen order. Repeat occurrences of an identifier map to
// the same integer, so references between columns survive the
// pseudonymization. Identifiers are compared verbatim, without any case or
// format normalization.
//
// The mapping lives on the transformer instance and is never persisted.
type SequenceTransformer struct {
	assigned map[string]int
	nextID   int
}

var sequenceParams = []Parameter{
	{
		Name:          "start",
		SupportedType: "int",
		Default:       1,
		Required:      false,
	},
}

func NewSequenceTransformer(params ParameterValues) (*SequenceTransformer, error) {
	start, err := FindParameterWithDefault(params, "start", 1)
	if err != nil {
		return nil, fmt.Errorf("uuid_to_int: start must be an integer: %w", err)
	}

	return &SequenceTransformer{
		assigned: make(map[string]int),
		nextID:   start,
	}, nil
}

func (st *SequenceTransformer) Transform(_ context.Context, value string) (string, error) {
	id, found := st.assigned[value]
	if !found {
		id = st.nextID
		st.assigned[value] = id
		st.nextID++
	}
	return strconv.Itoa(id), nil
}

func (st *SequenceTransformer) Type() TransformerType {
	return UUIDToInt
}

func (st *SequenceTransformer) Close() error {
	return nil
}

func SequenceTransformerDefinition() *Definition {
	return &Definition{
		Parameters: sequenceParams,
	}
}
