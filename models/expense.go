package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SriHarshaKodavati/openBill/ledger"
	"github.com/SriHarshaKodavati/openBill/utils"
)

type Expense struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID     uuid.UUID      `gorm:"type:uuid;index" json:"groupId"`
	Description string         `gorm:"not null;size:255" json:"description"`
	Amount      float64        `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaidBy      string         `gorm:"not null;size:100" json:"paidBy"`
	Splits      []ExpenseSplit `gorm:"foreignKey:ExpenseID" json:"-"`
	CreatedAt   time.Time      `gorm:"index" json:"createdAt"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// SplitNames returns the split members in the order they were entered.
func (e *Expense) SplitNames() []string {
	splits := make([]ExpenseSplit, len(e.Splits))
	copy(splits, e.Splits)
	sort.SliceStable(splits, func(i, j int) bool {
		return splits[i].Position < splits[j].Position
	})

	names := make([]string, len(splits))
	for i, s := range splits {
		names[i] = s.Member
	}
	return names
}

// ToRecord converts a stored expense into the immutable form the ledger reads.
func (e *Expense) ToRecord() ledger.Record {
	return ledger.Record{
		ID:           e.ID.String(),
		Description:  e.Description,
		Amount:       e.Amount,
		PaidBy:       e.PaidBy,
		SplitBetween: e.SplitNames(),
		CreatedAt:    e.CreatedAt,
	}
}

type ExpenseSplit struct {
	ExpenseID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Member    string    `gorm:"primaryKey;size:100"`
	Position  int       `gorm:"not null"`
}

// Request structs
type CreateExpenseRequest struct {
	Description  string          `json:"description" binding:"required"`
	Amount       decimal.Decimal `json:"amount"` // accepts 12.5 or "12.50"
	PaidBy       string          `json:"paidBy" binding:"required"`
	SplitBetween []string        `json:"splitBetween"` // defaults to every current member
}

// Response
type ExpenseResponse struct {
	ID           uuid.UUID `json:"id"`
	Description  string    `json:"description"`
	Amount       float64   `json:"amount"`
	PaidBy       string    `json:"paidBy"`
	SplitBetween []string  `json:"splitBetween"`
	Share        float64   `json:"share"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (e *Expense) ToResponse() ExpenseResponse {
	rec := e.ToRecord()
	// a stored expense always has a positive amount and a split; zero otherwise
	share, _ := ledger.Share(rec)
	return ExpenseResponse{
		ID:           e.ID,
		Description:  e.Description,
		Amount:       e.Amount,
		PaidBy:       e.PaidBy,
		SplitBetween: rec.SplitBetween,
		Share:        utils.RoundToTwo(share),
		CreatedAt:    e.CreatedAt,
	}
}
