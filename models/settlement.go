package models

// SettleUpResponse is returned for GET /api/groups/:code/settle-up: every
// netted debt as a suggested payment.
type SettleUpResponse struct {
	TeamCode string   `json:"teamCode"`
	Payments []Debt   `json:"payments"`
	Messages []string `json:"messages"`
	Settled  bool     `json:"settled"`
}
