package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/SriHarshaKodavati/openBill/ledger"
	"github.com/SriHarshaKodavati/openBill/models"
	"github.com/SriHarshaKodavati/openBill/utils"
)

var (
	ledgerComputations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "openbill",
		Name:      "ledger_computations_total",
		Help:      "Ledger snapshots computed, by result.",
	}, []string{"result"})
	ledgerRecords = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "openbill",
		Name:      "ledger_snapshot_records",
		Help:      "Expense records per computed snapshot.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 6),
	})
)

// RegisterMetrics adds the service collectors to reg.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(ledgerComputations, ledgerRecords)
}

// Snapshot is a group, its expenses (newest first) and everything derived
// from them.
type Snapshot struct {
	Group    *models.Group
	Expenses []models.Expense
	Records  []ledger.Record
	Summary  *ledger.Summary
}

// LoadSnapshot reads the current expenses and recomputes the ledger.
func LoadSnapshot(ctx context.Context, group *models.Group) (*Snapshot, error) {
	expenses, err := ListExpenses(ctx, group)
	if err != nil {
		return nil, err
	}

	records := make([]ledger.Record, len(expenses))
	for i := range expenses {
		records[i] = expenses[i].ToRecord()
	}

	summary, err := ledger.Compute(group.MemberNames(), records)
	if err != nil {
		ledgerComputations.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("compute ledger for %s: %w", group.TeamCode, err)
	}
	ledgerComputations.WithLabelValues("ok").Inc()
	ledgerRecords.Observe(float64(len(records)))

	return &Snapshot{Group: group, Expenses: expenses, Records: records, Summary: summary}, nil
}

func statusOf(balance float64) string {
	switch {
	case balance > ledger.Epsilon:
		return models.StatusShouldReceive
	case balance < -ledger.Epsilon:
		return models.StatusShouldPay
	default:
		return models.StatusSettled
	}
}

// Debts returns every netted debt, ordered by member position.
func (s *Snapshot) Debts() []models.Debt {
	edges := s.Summary.Net.Edges()
	debts := make([]models.Debt, len(edges))
	for i, e := range edges {
		debts[i] = models.Debt{From: e.From, To: e.To, Amount: utils.RoundToTwo(e.Amount)}
	}
	return debts
}

func (s *Snapshot) BalanceSummary() models.GroupBalanceSummary {
	balances := make([]models.MemberBalance, len(s.Summary.Balances))
	for i, b := range s.Summary.Balances {
		balances[i] = models.MemberBalance{
			Member:  b.Member,
			Paid:    utils.RoundToTwo(b.Paid),
			Owed:    utils.RoundToTwo(b.Owed),
			Balance: utils.RoundToTwo(b.Net),
			Status:  statusOf(b.Net),
		}
	}

	var total float64
	for _, r := range s.Records {
		total += r.Amount
	}
	var perPerson float64
	if n := s.Summary.Roster.Len(); n > 0 {
		perPerson = total / float64(n)
	}

	return models.GroupBalanceSummary{
		TeamCode:       s.Group.TeamCode,
		GroupName:      s.Group.Name,
		Balances:       balances,
		Debts:          s.Debts(),
		TotalSpent:     utils.RoundToTwo(total),
		PerPersonShare: utils.RoundToTwo(perPerson),
	}
}

// MemberDetail answers "whom does this member owe, and who owes them".
func (s *Snapshot) MemberDetail(name string) (*models.MemberDetailResponse, error) {
	balance, err := s.Summary.BalanceOf(name)
	if errors.Is(err, ledger.ErrUnknownMember) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}

	creditors, err := s.Summary.Net.CreditorsOf(name)
	if err != nil {
		return nil, err
	}
	debtors, err := s.Summary.Net.DebtorsOf(name)
	if err != nil {
		return nil, err
	}
	shares, err := ledger.SharesOf(s.Summary.Roster, name, s.Records)
	if err != nil {
		return nil, err
	}

	detail := &models.MemberDetailResponse{
		Member:         name,
		TotalPaid:      utils.RoundToTwo(balance.Paid),
		TotalOwed:      utils.RoundToTwo(balance.Owed),
		NetBalance:     utils.RoundToTwo(balance.Net),
		Status:         statusOf(balance.Net),
		Creditors:      counterparties(creditors),
		Debtors:        counterparties(debtors),
		TotalToPay:     utils.RoundToTwo(ledger.Total(creditors)),
		TotalToReceive: utils.RoundToTwo(ledger.Total(debtors)),
		Expenses:       make([]models.MemberShare, 0, len(shares)),
		Suggestions:    make([]string, 0, len(creditors)+len(debtors)),
	}

	for _, line := range shares {
		id, _ := uuid.Parse(line.Record.ID)
		detail.Expenses = append(detail.Expenses, models.MemberShare{
			ExpenseID:   id,
			Description: line.Record.Description,
			Amount:      line.Record.Amount,
			PaidBy:      line.Record.PaidBy,
			SplitSize:   line.SplitSize,
			Share:       utils.RoundToTwo(line.Share),
		})
	}
	for _, c := range creditors {
		detail.Suggestions = append(detail.Suggestions, paymentMessage(name, c.Member, c.Amount))
	}
	for _, d := range debtors {
		detail.Suggestions = append(detail.Suggestions, paymentMessage(d.Member, name, d.Amount))
	}
	return detail, nil
}

// SettleUp lists every netted debt as a payment. Payments are pairwise, so a
// cycle of debts stays a cycle of payments.
func (s *Snapshot) SettleUp() models.SettleUpResponse {
	debts := s.Debts()
	messages := make([]string, len(debts))
	for i, d := range debts {
		messages[i] = paymentMessage(d.From, d.To, d.Amount)
	}
	return models.SettleUpResponse{
		TeamCode: s.Group.TeamCode,
		Payments: debts,
		Messages: messages,
		Settled:  len(debts) == 0,
	}
}

func paymentMessage(from, to string, amount float64) string {
	return fmt.Sprintf("%s should pay %s to %s", from, utils.FormatAmount(amount), to)
}

func counterparties(parties []ledger.Counterparty) []models.Counterparty {
	out := make([]models.Counterparty, len(parties))
	for i, p := range parties {
		out[i] = models.Counterparty{Name: p.Member, Amount: utils.RoundToTwo(p.Amount)}
	}
	return out
}
