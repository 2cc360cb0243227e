package models

// MemberBalance is one row of GET /api/groups/:code/balances.
type MemberBalance struct {
	Member  string  `json:"member"`
	Paid    float64 `json:"paid"`
	Owed    float64 `json:"owed"`
	Balance float64 `json:"balance"` // positive = should receive, negative = should pay
	Status  string  `json:"status"`
}

const (
	StatusShouldReceive = "should_receive"
	StatusShouldPay     = "should_pay"
	StatusSettled       = "settled"
)

// Debt is a netted amount one member owes another.
type Debt struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// Counterparty is the other side of a debt seen from one member.
type Counterparty struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// GroupBalanceSummary is returned for GET /api/groups/:code/balances
type GroupBalanceSummary struct {
	TeamCode       string          `json:"teamCode"`
	GroupName      string          `json:"groupName"`
	Balances       []MemberBalance `json:"balances"`
	Debts          []Debt          `json:"debts"`
	TotalSpent     float64         `json:"totalSpent"`
	PerPersonShare float64         `json:"perPersonShare"`
}
