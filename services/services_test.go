package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/SriHarshaKodavati/openBill/config"
	"github.com/SriHarshaKodavati/openBill/database"
	"github.com/SriHarshaKodavati/openBill/events"
	"github.com/SriHarshaKodavati/openBill/ledger"
	"github.com/SriHarshaKodavati/openBill/models"
	"github.com/SriHarshaKodavati/openBill/utils"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordingPublisher) Close() error { return nil }

func (r *recordingPublisher) types() []string {
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func setup(t *testing.T) *recordingPublisher {
	t.Helper()
	db, err := database.Open("sqlite", ":memory:", logger.Silent)
	require.NoError(t, err)

	prevDB, prevPub, prevMail := database.DB, events.Default, notifService
	rec := &recordingPublisher{}
	database.DB, database.Redis, events.Default, notifService = db, nil, rec, nil
	t.Cleanup(func() {
		database.DB, events.Default, notifService = prevDB, prevPub, prevMail
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return rec
}

func newGroup(t *testing.T, members ...string) *models.Group {
	t.Helper()
	ctx := context.Background()
	group, err := CreateGroup(ctx, "Trip", members[0])
	require.NoError(t, err)
	for _, m := range members[1:] {
		group, _, err = JoinGroup(ctx, group.TeamCode, m)
		require.NoError(t, err)
	}
	return group
}

func expenseReq(desc, amount, paidBy string, split ...string) models.CreateExpenseRequest {
	return models.CreateExpenseRequest{
		Description:  desc,
		Amount:       decimal.RequireFromString(amount),
		PaidBy:       paidBy,
		SplitBetween: split,
	}
}

func TestCreateGroup(t *testing.T) {
	setup(t)
	ctx := context.Background()

	group, err := CreateGroup(ctx, "  Goa Trip ", " Alice ")
	require.NoError(t, err)
	assert.Equal(t, "Goa Trip", group.Name)
	assert.True(t, utils.ValidTeamCode(group.TeamCode))
	assert.Equal(t, []string{"Alice"}, group.MemberNames())

	activity, err := ListActivity(ctx, group, utils.PaginationQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, activity, 1)
	assert.Equal(t, models.ActivityGroupCreated, activity[0].Type)

	_, err = CreateGroup(ctx, "", "Alice")
	assert.ErrorIs(t, err, ErrMissingFields)
	_, err = CreateGroup(ctx, "Trip", "   ")
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestCreateGroupRetriesTeamCodeCollision(t *testing.T) {
	setup(t)
	prev := generateTeamCode
	t.Cleanup(func() { generateTeamCode = prev })

	codes := []string{"AAAA1111", "AAAA1111", "BBBB2222"}
	generateTeamCode = func() (string, error) {
		code := codes[0]
		codes = codes[1:]
		return code, nil
	}

	first, err := CreateGroup(context.Background(), "One", "Alice")
	require.NoError(t, err)
	second, err := CreateGroup(context.Background(), "Two", "Bob")
	require.NoError(t, err)

	assert.Equal(t, "AAAA1111", first.TeamCode)
	assert.Equal(t, "BBBB2222", second.TeamCode)
}

func TestCreateGroupGivesUpAfterRepeatedCollisions(t *testing.T) {
	setup(t)
	prev := generateTeamCode
	t.Cleanup(func() { generateTeamCode = prev })
	generateTeamCode = func() (string, error) { return "AAAA1111", nil }

	_, err := CreateGroup(context.Background(), "One", "Alice")
	require.NoError(t, err)
	_, err = CreateGroup(context.Background(), "Two", "Bob")
	assert.ErrorContains(t, err, "unique team code")
}

func TestFindGroup(t *testing.T) {
	setup(t)
	group := newGroup(t, "Alice", "Bob")

	found, err := FindGroup(context.Background(), " "+strings.ToLower(group.TeamCode)+" ")
	require.NoError(t, err)
	assert.Equal(t, group.ID, found.ID)
	assert.Equal(t, []string{"Alice", "Bob"}, found.MemberNames())

	_, err = FindGroup(context.Background(), "ZZZZ9999")
	assert.ErrorIs(t, err, ErrGroupNotFound)
	_, err = FindGroup(context.Background(), "short")
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestJoinGroupIsIdempotent(t *testing.T) {
	rec := setup(t)
	ctx := context.Background()
	group := newGroup(t, "Alice")

	joined, ok, err := JoinGroup(ctx, group.TeamCode, "Bob")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"Alice", "Bob"}, joined.MemberNames())

	again, ok, err := JoinGroup(ctx, group.TeamCode, " Bob ")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []string{"Alice", "Bob"}, again.MemberNames())

	assert.Equal(t, []string{events.TypeMemberJoined}, rec.types())

	_, _, err = JoinGroup(ctx, "ZZZZ9999", "Carol")
	assert.ErrorIs(t, err, ErrGroupNotFound)
	_, _, err = JoinGroup(ctx, "", "Carol")
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestConcurrentJoinsGetDistinctPositions(t *testing.T) {
	setup(t)
	ctx := context.Background()
	group := newGroup(t, "Alice")

	const joiners = 8
	var wg sync.WaitGroup
	errs := make(chan error, joiners)
	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			_, _, err := JoinGroup(ctx, group.TeamCode, name)
			errs <- err
		}(fmt.Sprintf("Member%d", i))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var members []models.GroupMember
	require.NoError(t, database.DB.Where("group_id = ?", group.ID).Order("position").Find(&members).Error)
	require.Len(t, members, joiners+1)
	for i, m := range members {
		assert.Equal(t, i, m.Position, m.Name)
	}
}

func TestJoinGroupReturnsCurrentMembers(t *testing.T) {
	setup(t)
	ctx := context.Background()
	group := newGroup(t, "Alice")

	// written behind the service's back, as another instance would
	require.NoError(t, database.DB.Create(&models.GroupMember{GroupID: group.ID, Name: "Bob", Position: 1}).Error)

	joined, ok, err := JoinGroup(ctx, group.TeamCode, "Carol")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, joined.MemberNames())
}

func TestMemberPositionIsUniquePerGroup(t *testing.T) {
	setup(t)
	group := newGroup(t, "Alice")

	err := database.DB.Create(&models.GroupMember{GroupID: group.ID, Name: "Bob", Position: 0}).Error
	assert.Error(t, err)
}

func TestAddExpenseDefaultsSplitToAllMembers(t *testing.T) {
	rec := setup(t)
	ctx := context.Background()
	group := newGroup(t, "Alice", "Bob", "Carol")

	expense, err := AddExpense(ctx, group, "Alice", expenseReq(" Dinner ", "90", "Alice"))
	require.NoError(t, err)
	assert.Equal(t, "Dinner", expense.Description)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, expense.SplitNames())

	expenses, err := ListExpenses(ctx, group)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, 90.0, expenses[0].Amount)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, expenses[0].SplitNames())

	last := rec.events[len(rec.events)-1]
	assert.Equal(t, events.TypeExpenseAdded, last.Type)
	assert.Equal(t, 90.0, last.Amount)
	assert.Equal(t, group.TeamCode, last.TeamCode)
}

func TestAddExpenseCollapsesDuplicateSplitMembers(t *testing.T) {
	setup(t)
	group := newGroup(t, "Alice", "Bob", "Carol")

	expense, err := AddExpense(context.Background(), group, "Bob", expenseReq("Taxi", "30", "Bob", "Alice", "Bob", "Alice", " Bob "))
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob"}, expense.SplitNames())
	assert.Equal(t, 15.0, expense.ToResponse().Share)
}

func TestAddExpenseValidation(t *testing.T) {
	setup(t)
	group := newGroup(t, "Alice", "Bob")

	tests := []struct {
		name    string
		req     models.CreateExpenseRequest
		wantErr error
	}{
		{"missing description", expenseReq(" ", "10", "Alice"), ErrMissingFields},
		{"missing payer", expenseReq("Lunch", "10", ""), ErrMissingFields},
		{"zero amount", expenseReq("Lunch", "0", "Alice"), ErrMissingFields},
		{"negative amount", expenseReq("Lunch", "-5", "Alice"), ErrInvalidInput},
		{"three decimals", expenseReq("Lunch", "10.005", "Alice"), ErrInvalidInput},
		{"payer not a member", expenseReq("Lunch", "10", "Mallory"), ledger.ErrInvalidRecord},
		{"split outsider", expenseReq("Lunch", "10", "Alice", "Bob", "Mallory"), ledger.ErrInvalidRecord},
		{"blank split", expenseReq("Lunch", "10", "Alice", " ", ""), ledger.ErrInvalidRecord},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AddExpense(context.Background(), group, "Alice", tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	expenses, err := ListExpenses(context.Background(), group)
	require.NoError(t, err)
	assert.Empty(t, expenses)
}

func TestAddExpenseDescriptionLimitCountsCharacters(t *testing.T) {
	setup(t)
	ctx := context.Background()
	group := newGroup(t, "Alice")

	expense, err := AddExpense(ctx, group, "Alice", expenseReq(strings.Repeat("é", 200), "10", "Alice"))
	require.NoError(t, err)
	assert.Equal(t, 200, utf8.RuneCountInString(expense.Description))

	_, err = AddExpense(ctx, group, "Alice", expenseReq(strings.Repeat("é", 256), "10", "Alice"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteExpense(t *testing.T) {
	rec := setup(t)
	ctx := context.Background()
	group := newGroup(t, "Alice", "Bob")
	other := newGroup(t, "Zed")

	expense, err := AddExpense(ctx, group, "Alice", expenseReq("Hotel", "100", "Alice"))
	require.NoError(t, err)

	assert.ErrorIs(t, DeleteExpense(ctx, other, "Zed", expense.ID.String()), ErrExpenseNotFound)
	assert.ErrorIs(t, DeleteExpense(ctx, group, "Bob", "not-a-uuid"), ErrExpenseNotFound)

	require.NoError(t, DeleteExpense(ctx, group, "Bob", expense.ID.String()))
	assert.ErrorIs(t, DeleteExpense(ctx, group, "Bob", expense.ID.String()), ErrExpenseNotFound)

	snapshot, err := LoadSnapshot(ctx, group)
	require.NoError(t, err)
	assert.Zero(t, snapshot.Summary.Net.Len())
	for _, b := range snapshot.Summary.Balances {
		assert.Zero(t, b.Net)
	}

	var splits int64
	require.NoError(t, database.DB.Model(&models.ExpenseSplit{}).Count(&splits).Error)
	assert.Zero(t, splits)

	assert.Equal(t, events.TypeExpenseDeleted, rec.events[len(rec.events)-1].Type)
}

func TestBalanceSummary(t *testing.T) {
	setup(t)
	ctx := context.Background()
	group := newGroup(t, "Alice", "Bob", "Carol", "Dave")

	_, err := AddExpense(ctx, group, "Alice", expenseReq("Dinner", "90", "Alice", "Alice", "Bob", "Carol"))
	require.NoError(t, err)
	_, err = AddExpense(ctx, group, "Bob", expenseReq("Cab", "30", "Bob", "Alice", "Bob"))
	require.NoError(t, err)

	snapshot, err := LoadSnapshot(ctx, group)
	require.NoError(t, err)
	summary := snapshot.BalanceSummary()

	assert.Equal(t, 120.0, summary.TotalSpent)
	assert.Equal(t, 30.0, summary.PerPersonShare)
	assert.Equal(t, []models.MemberBalance{
		{Member: "Alice", Paid: 90, Owed: 45, Balance: 45, Status: models.StatusShouldReceive},
		{Member: "Bob", Paid: 30, Owed: 45, Balance: -15, Status: models.StatusShouldPay},
		{Member: "Carol", Paid: 0, Owed: 30, Balance: -30, Status: models.StatusShouldPay},
		{Member: "Dave", Paid: 0, Owed: 0, Balance: 0, Status: models.StatusSettled},
	}, summary.Balances)
	assert.Equal(t, []models.Debt{
		{From: "Bob", To: "Alice", Amount: 15},
		{From: "Carol", To: "Alice", Amount: 30},
	}, summary.Debts)
}

func TestMemberDetail(t *testing.T) {
	setup(t)
	ctx := context.Background()
	group := newGroup(t, "Alice", "Bob", "Carol")

	_, err := AddExpense(ctx, group, "Alice", expenseReq("Groceries", "60", "Alice"))
	require.NoError(t, err)
	_, err = AddExpense(ctx, group, "Bob", expenseReq("Fuel", "30", "Bob", "Bob", "Carol"))
	require.NoError(t, err)

	snapshot, err := LoadSnapshot(ctx, group)
	require.NoError(t, err)

	carol, err := snapshot.MemberDetail("Carol")
	require.NoError(t, err)
	assert.Equal(t, 0.0, carol.TotalPaid)
	assert.Equal(t, 35.0, carol.TotalOwed)
	assert.Equal(t, -35.0, carol.NetBalance)
	assert.Equal(t, models.StatusShouldPay, carol.Status)
	assert.Equal(t, []models.Counterparty{{Name: "Alice", Amount: 20}, {Name: "Bob", Amount: 15}}, carol.Creditors)
	assert.Empty(t, carol.Debtors)
	assert.Equal(t, 35.0, carol.TotalToPay)
	assert.Equal(t, []string{"Carol should pay 20.00 to Alice", "Carol should pay 15.00 to Bob"}, carol.Suggestions)
	require.Len(t, carol.Expenses, 2)
	assert.Equal(t, "Fuel", carol.Expenses[0].Description)
	assert.Equal(t, 2, carol.Expenses[0].SplitSize)
	assert.Equal(t, 15.0, carol.Expenses[0].Share)

	alice, err := snapshot.MemberDetail("Alice")
	require.NoError(t, err)
	assert.Equal(t, []models.Counterparty{{Name: "Bob", Amount: 20}, {Name: "Carol", Amount: 20}}, alice.Debtors)
	assert.Equal(t, 40.0, alice.TotalToReceive)

	_, err = snapshot.MemberDetail("Mallory")
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestSettleUpKeepsCycles(t *testing.T) {
	setup(t)
	ctx := context.Background()
	group := newGroup(t, "A", "B", "C")

	_, err := AddExpense(ctx, group, "A", expenseReq("a", "10", "A", "B"))
	require.NoError(t, err)
	_, err = AddExpense(ctx, group, "B", expenseReq("b", "10", "B", "C"))
	require.NoError(t, err)
	_, err = AddExpense(ctx, group, "C", expenseReq("c", "10", "C", "A"))
	require.NoError(t, err)

	snapshot, err := LoadSnapshot(ctx, group)
	require.NoError(t, err)
	settle := snapshot.SettleUp()

	assert.False(t, settle.Settled)
	assert.Len(t, settle.Payments, 3)
	for _, b := range snapshot.BalanceSummary().Balances {
		assert.Equal(t, models.StatusSettled, b.Status)
	}
}

func TestSettleUpEmptyGroup(t *testing.T) {
	setup(t)
	group := newGroup(t, "Alice")

	snapshot, err := LoadSnapshot(context.Background(), group)
	require.NoError(t, err)
	settle := snapshot.SettleUp()
	assert.True(t, settle.Settled)
	assert.Empty(t, settle.Payments)
}

func TestListActivityPaginates(t *testing.T) {
	setup(t)
	ctx := context.Background()
	group := newGroup(t, "Alice", "Bob", "Carol")

	page, err := ListActivity(ctx, group, utils.PaginationQuery{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, models.ActivityMemberJoined, page[0].Type)

	rest, err := ListActivity(ctx, group, utils.PaginationQuery{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, models.ActivityGroupCreated, rest[0].Type)
}

func TestShareGroup(t *testing.T) {
	setup(t)
	ctx := context.Background()
	group := newGroup(t, "Alice", "Bob")
	_, err := AddExpense(ctx, group, "Alice", expenseReq("Dinner", "50", "Alice"))
	require.NoError(t, err)

	req := models.InviteRequest{Email: "carol@example.com", Name: "Carol"}
	assert.ErrorIs(t, ShareGroup(ctx, group, "Alice", req), ErrEmailDisabled)

	cfg := &config.Config{AppName: "openBill", AppURL: "http://localhost:5173", SendGridFrom: "noreply@openbill.app"}
	var sent []*mail.SGMailV3
	notifService = newNotificationService(cfg, func(_ context.Context, m *mail.SGMailV3) error {
		sent = append(sent, m)
		return nil
	})

	require.NoError(t, ShareGroup(ctx, group, "Alice", req))
	require.Len(t, sent, 1)
	assert.Equal(t, `Alice shared "Trip" with you on openBill`, sent[0].Subject)

	body := string(mail.GetRequestBody(sent[0]))
	assert.Contains(t, body, "carol@example.com")
	assert.Contains(t, body, group.TeamCode)
	assert.Contains(t, body, "Bob should pay 25.00 to Alice")

	notifService = newNotificationService(cfg, func(context.Context, *mail.SGMailV3) error {
		return errors.New("sendgrid returned status 401")
	})
	assert.ErrorContains(t, ShareGroup(ctx, group, "Alice", req), "send email")
}
