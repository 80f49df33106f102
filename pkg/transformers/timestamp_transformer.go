// SPDX-License-Identifier: Apache-2.0

package transformers

import (
	"context"
	"fmt"
	"time"
)

// TimestampTransformer normalizes date and timestamp strings into the
// canonical YYYY-MM-DD form. Trailing time and timezone tokens are
// discarded verbatim; no timezone conversion is applied to the date, even
// for zone abbreviations with a known offset.
type TimestampTransformer struct{}

const canonicalDateFormat = "2006-01-02"

// Input layouts, tried in order. The unpadded numeric fields accept both
// padded and unpadded day/month values, and time.Parse rejects invalid
// calendar dates.
var timestampLayouts = []string{
	"2006-1-2",
	"2006-Jan-2",
	"2006-1-2 15:4:5 MST",
	"2006-1-2 15:4:5",
}

func NewTimestampTransformer() *TimestampTransformer {
	return &TimestampTransformer{}
}

func (tt *TimestampTransformer) Transform(_ context.Context, value string) (string, error) {
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		return parsed.Format(canonicalDateFormat), nil
	}

	return "", fmt.Errorf("%q: %w", value, ErrUnparseableTimestamp)
}

func (tt *TimestampTransformer) Type() TransformerType {
	return TimestampToDate
}

func (tt *TimestampTransformer) Close() error {
	return nil
}

func TimestampTransformerDefinition() *Definition {
	return &Definition{}
}
