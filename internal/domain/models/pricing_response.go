package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ResultPrefix is prepended to the rendered price in the result element.
const ResultPrefix = "Calculated Option Price: $"

// MissingPrice is rendered when the response carries no price field.
const MissingPrice = "undefined"

// PricingResponse is the decoded body returned by the pricing API.
//
// Price keeps the raw JSON token so numeric, string and odd values render
// exactly once, without a lossy intermediate type. StatusCode is recorded for
// logging only; it never decides success.
type PricingResponse struct {
	Price      json.RawMessage `json:"price,omitempty" swaggertype:"number" example:"12.34"`
	StatusCode int             `json:"-"`
}

// HasPrice reports whether the response contained a price field at all.
func (r *PricingResponse) HasPrice() bool {
	return r != nil && len(r.Price) > 0
}

// PriceText renders the price token the way a browser concatenates it onto
// a string.
//
//   - absent  -> "undefined"
//   - number  -> shortest form, exponent outside [1e-6, 1e21) ("12.340" -> "12.34", 1e21 -> "1e+21")
//   - string  -> its contents
//   - null    -> "null"; true/false as-is
//   - array   -> elements joined by "," (null elements empty: [1,null,2] -> "1,,2")
//   - object  -> "[object Object]"
func (r *PricingResponse) PriceText() string {
	if !r.HasPrice() {
		return MissingPrice
	}
	var v any
	dec := json.NewDecoder(bytes.NewReader(r.Price))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return string(bytes.TrimSpace(r.Price))
	}
	return displayString(v)
}

func displayString(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil && !math.IsInf(f, 0) {
			return t.String()
		}
		return formatNumber(f)
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			if e != nil {
				parts[i] = displayString(e)
			}
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}

// formatNumber prints f in the shortest round-tripping form, switching to
// exponent notation (without exponent zero padding) outside [1e-6, 1e21).
func formatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ResultText is the full string written into the result element.
func (r *PricingResponse) ResultText() string {
	return ResultPrefix + r.PriceText()
}
