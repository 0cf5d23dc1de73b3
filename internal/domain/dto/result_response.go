package dto

import "time"

// ResultResponse represents the JSON structure returned by
// GET /api/v1/result: the current state of the result element.
type ResultResponse struct {
	Text      string     `json:"text" example:"Calculated Option Price: $12.34"`
	Visible   bool       `json:"visible" example:"true"`
	Updates   uint64     `json:"updates" example:"3"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
