package domain

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Amount is an optional monetary value. The zero value is missing.
//
// A missing quote, premium or forward must never be replaced by zero: every
// arithmetic helper below returns a missing Amount when any operand is
// missing, so an absent input surfaces as an empty cell in the final table.
type Amount struct {
	value float64
	valid bool
}

// Missing is the absent Amount
var Missing = Amount{}

// Some wraps a present value. NaN and infinities are missing.
func Some(v float64) Amount {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Missing
	}
	return Amount{value: v, valid: true}
}

// FromPointer converts a nullable float into an Amount
func FromPointer(v *float64) Amount {
	if v == nil {
		return Missing
	}
	return Some(*v)
}

// Valid reports whether the value is present
func (a Amount) Valid() bool { return a.valid }

// Get returns the value and whether it is present
func (a Amount) Get() (float64, bool) { return a.value, a.valid }

// Or returns the value, or fallback when missing
func (a Amount) Or(fallback float64) float64 {
	if !a.valid {
		return fallback
	}
	return a.value
}

// Add returns a + b
func (a Amount) Add(b Amount) Amount {
	if !a.valid || !b.valid {
		return Missing
	}
	return Some(a.value + b.value)
}

// Sub returns a - b
func (a Amount) Sub(b Amount) Amount {
	if !a.valid || !b.valid {
		return Missing
	}
	return Some(a.value - b.value)
}

// Mul returns a * b
func (a Amount) Mul(b Amount) Amount {
	if !a.valid || !b.valid {
		return Missing
	}
	return Some(a.value * b.value)
}

// Div returns a / b. Division by zero yields a missing Amount.
func (a Amount) Div(b Amount) Amount {
	if !a.valid || !b.valid || b.value == 0 {
		return Missing
	}
	return Some(a.value / b.value)
}

// Scale multiplies by a constant
func (a Amount) Scale(f float64) Amount {
	return a.Mul(Some(f))
}

// Offset adds a constant
func (a Amount) Offset(d float64) Amount {
	return a.Add(Some(d))
}

// Round rounds half away from zero to the given number of decimal places
func (a Amount) Round(places int32) Amount {
	if !a.valid {
		return Missing
	}
	f, _ := decimal.NewFromFloat(a.value).Round(places).Float64()
	return Some(f)
}

// String renders the value with two decimals, or an empty string when missing
func (a Amount) String() string {
	if !a.valid {
		return ""
	}
	return strconv.FormatFloat(a.value, 'f', 2, 64)
}

// MarshalJSON encodes a missing Amount as null
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.valid {
		return []byte("null"), nil
	}
	return json.Marshal(a.value)
}

// UnmarshalJSON decodes null as a missing Amount
func (a *Amount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = Missing
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = Some(v)
	return nil
}
