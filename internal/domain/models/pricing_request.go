package models

// Form control ids read on every submission.
const (
	FieldMethod       = "method"
	FieldType         = "type"
	FieldStockPrice   = "stockPrice"
	FieldStrikePrice  = "strikePrice"
	FieldVolatility   = "volatility"
	FieldRiskFreeRate = "riskFreeRate"
	FieldTime         = "time"
)

// PricingRequest is the payload posted to the pricing API.
//
// Every value is the raw text of the matching form control; nothing is parsed,
// trimmed or validated. Method doubles as the API path segment, so the URL and
// the payload always carry the same value.
//
// swagger:model PricingRequest
type PricingRequest struct {
	Method       string `json:"method" example:"blackscholes"`
	Type         string `json:"type" example:"call"`
	StockPrice   string `json:"stockPrice" example:"100"`
	StrikePrice  string `json:"strikePrice" example:"95"`
	Volatility   string `json:"volatility" example:"0.2"`
	RiskFreeRate string `json:"riskFreeRate" example:"0.05"`
	Time         string `json:"time" example:"1"`
}
