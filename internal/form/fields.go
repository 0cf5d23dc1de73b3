package form

import (
	"net/url"

	"github.com/guttosm/optionform/internal/domain/models"
)

// FieldSource exposes the current value of a form control by id.
type FieldSource interface {
	Value(id string) string
}

// Values adapts url.Values (a posted HTML form) to FieldSource.
type Values url.Values

func (v Values) Value(id string) string { return url.Values(v).Get(id) }

// Fields is a plain id → value FieldSource.
type Fields map[string]string

func (f Fields) Value(id string) string { return f[id] }

// BuildRequest reads every control once, at call time, and copies the values
// into a PricingRequest unchanged.
func BuildRequest(src FieldSource) models.PricingRequest {
	return models.PricingRequest{
		Method:       src.Value(models.FieldMethod),
		Type:         src.Value(models.FieldType),
		StockPrice:   src.Value(models.FieldStockPrice),
		StrikePrice:  src.Value(models.FieldStrikePrice),
		Volatility:   src.Value(models.FieldVolatility),
		RiskFreeRate: src.Value(models.FieldRiskFreeRate),
		Time:         src.Value(models.FieldTime),
	}
}
