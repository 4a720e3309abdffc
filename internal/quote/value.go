package quote

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Value is a quote field value: either the text scraped from the page or
// the number that text represents
type Value struct {
	text     string
	number   float64
	isNumber bool
}

// Text creates a text value
func Text(s string) Value {
	return Value{text: s}
}

// Number creates a numeric value
func Number(f float64) Value {
	return Value{number: f, isNumber: true}
}

// NormalizeValue converts scraped text into a number when it parses as one
// after removing thousands separators. Anything else, including NaN and
// infinities, is kept as the original text.
func NormalizeValue(s string) Value {
	cleaned := strings.TrimSpace(strings.ReplaceAll(s, ",", ""))

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Text(s)
	}
	return Number(f)
}

// IsNumber reports whether the value holds a number
func (v Value) IsNumber() bool {
	return v.isNumber
}

// Float returns the numeric value, if any
func (v Value) Float() (float64, bool) {
	return v.number, v.isNumber
}

// String returns the text, or the number formatted without trailing zeros
func (v Value) String() string {
	if v.isNumber {
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	}
	return v.text
}

// MarshalJSON encodes numbers as JSON numbers and text as JSON strings
func (v Value) MarshalJSON() ([]byte, error) {
	if v.isNumber {
		return json.Marshal(v.number)
	}
	return json.Marshal(v.text)
}
