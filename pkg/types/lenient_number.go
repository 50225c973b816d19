package types

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// LenientFloat accepts a JSON number, a numeric string, null, or garbage and
// coerces anything unparseable to zero. Submission forms send latitude and
// longitude as free text, and a bad value must never fail the record.
type LenientFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *LenientFloat) UnmarshalJSON(data []byte) error {
	*f = LenientFloat(coerceFloat(data))
	return nil
}

// Float64 returns the coerced value.
func (f LenientFloat) Float64() float64 {
	return float64(f)
}

// LenientInt behaves like LenientFloat for integer fields (rating counters).
// Fractional input truncates toward zero; negatives clamp to zero because the
// rating columns are non-negative.
type LenientInt int

// UnmarshalJSON implements json.Unmarshaler.
func (i *LenientInt) UnmarshalJSON(data []byte) error {
	v := int(coerceFloat(data))
	if v < 0 {
		v = 0
	}
	*i = LenientInt(v)
	return nil
}

// Int returns the coerced value.
func (i LenientInt) Int() int {
	return int(i)
}

func coerceFloat(data []byte) float64 {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return 0
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return 0
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0
		}
		return parsed
	}

	var n float64
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return 0
	}
	return n
}
