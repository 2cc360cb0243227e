package models

import "github.com/google/uuid"

// MemberShare is one expense seen from a member split into it.
type MemberShare struct {
	ExpenseID   uuid.UUID `json:"expenseId"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	PaidBy      string    `json:"paidBy"`
	SplitSize   int       `json:"splitSize"`
	Share       float64   `json:"share"`
}

// MemberDetailResponse is returned for GET /api/groups/:code/members/:name
type MemberDetailResponse struct {
	Member         string         `json:"member"`
	TotalPaid      float64        `json:"totalPaid"`
	TotalOwed      float64        `json:"totalOwed"`
	NetBalance     float64        `json:"netBalance"`
	Status         string         `json:"status"`
	Creditors      []Counterparty `json:"creditors"` // members this member owes
	Debtors        []Counterparty `json:"debtors"`   // members who owe this member
	TotalToPay     float64        `json:"totalToPay"`
	TotalToReceive float64        `json:"totalToReceive"`
	Expenses       []MemberShare  `json:"expenses"`
	Suggestions    []string       `json:"suggestions"`
}
