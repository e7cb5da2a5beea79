package metrics

import (
	"encoding/json"
	"strconv"
)

// Rate is a ratio that may be undefined because its denominator is zero.
// The zero value is undefined.
type Rate struct {
	value   float64
	defined bool
}

// Undefined is the rate reported for a zero denominator.
var Undefined = Rate{}

// Defined returns a rate holding v.
func Defined(v float64) Rate {
	return Rate{value: v, defined: true}
}

// Ratio returns num/den, or Undefined when den is zero.
func Ratio(num, den int) Rate {
	if den == 0 {
		return Undefined
	}
	return Defined(float64(num) / float64(den))
}

// Value returns the rate and whether it is defined.
func (r Rate) Value() (float64, bool) {
	return r.value, r.defined
}

// IsDefined reports whether the rate has a value.
func (r Rate) IsDefined() bool {
	return r.defined
}

// Or returns the rate's value, or fallback when it is undefined.
func (r Rate) Or(fallback float64) float64 {
	if !r.defined {
		return fallback
	}
	return r.value
}

func (r Rate) String() string {
	if !r.defined {
		return "undefined"
	}
	return strconv.FormatFloat(r.value, 'f', 4, 64)
}

// MarshalJSON encodes an undefined rate as null.
func (r Rate) MarshalJSON() ([]byte, error) {
	if !r.defined {
		return []byte("null"), nil
	}
	return json.Marshal(r.value)
}

// UnmarshalJSON decodes null as Undefined.
func (r *Rate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Undefined
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Defined(v)
	return nil
}
