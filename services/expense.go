package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SriHarshaKodavati/openBill/database"
	"github.com/SriHarshaKodavati/openBill/events"
	"github.com/SriHarshaKodavati/openBill/ledger"
	"github.com/SriHarshaKodavati/openBill/models"
	"github.com/SriHarshaKodavati/openBill/utils"
)

const maxDescriptionLength = 255

// AddExpense validates req against the group's current members and stores
// it. An empty split means everyone currently in the group.
func AddExpense(ctx context.Context, group *models.Group, actor string, req models.CreateExpenseRequest) (*models.Expense, error) {
	description := strings.TrimSpace(req.Description)
	paidBy := strings.TrimSpace(req.PaidBy)
	if description == "" || paidBy == "" || req.Amount.IsZero() {
		return nil, ErrMissingFields
	}
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return nil, fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, maxDescriptionLength)
	}

	amount, err := utils.ValidateAmount(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	members := group.MemberNames()
	split := dedupe(req.SplitBetween)
	if len(req.SplitBetween) == 0 {
		split = members
	}

	expense := models.Expense{
		ID:          uuid.New(),
		GroupID:     group.ID,
		Description: description,
		Amount:      amount,
		PaidBy:      paidBy,
	}
	for i, name := range split {
		expense.Splits = append(expense.Splits, models.ExpenseSplit{
			ExpenseID: expense.ID,
			Member:    name,
			Position:  i,
		})
	}

	if err := ledger.Validate(members, expense.ToRecord()); err != nil {
		return nil, err
	}

	err = database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&expense).Error; err != nil {
			return err
		}
		return tx.Create(&models.Activity{
			GroupID:     group.ID,
			Actor:       actor,
			Type:        models.ActivityExpenseAdded,
			ReferenceID: expense.ID,
			Description: fmt.Sprintf("%s added \"%s\" (%s) paid by %s", actor, expense.Description, utils.FormatAmount(expense.Amount), expense.PaidBy),
		}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense added", "team_code", group.TeamCode, "expense_id", expense.ID, "amount", expense.Amount)

	e := events.New(events.TypeExpenseAdded, group.TeamCode, actor, expense.ID.String())
	e.Amount = expense.Amount
	events.Emit(ctx, e)

	return &expense, nil
}

// dedupe trims names and drops repeats and blanks, keeping first occurrences.
func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// DeleteExpense removes an expense from the group. Balances are derived, so
// nothing else needs updating.
func DeleteExpense(ctx context.Context, group *models.Group, actor, expenseID string) error {
	id, err := uuid.Parse(expenseID)
	if err != nil {
		return ErrExpenseNotFound
	}

	err = database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var expense models.Expense
		if err := tx.Where("id = ? AND group_id = ?", id, group.ID).First(&expense).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrExpenseNotFound
			}
			return err
		}
		if err := tx.Where("expense_id = ?", id).Delete(&models.ExpenseSplit{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&expense).Error; err != nil {
			return err
		}
		return tx.Create(&models.Activity{
			GroupID:     group.ID,
			Actor:       actor,
			Type:        models.ActivityExpenseDeleted,
			ReferenceID: expense.ID,
			Description: fmt.Sprintf("%s deleted \"%s\" (%s)", actor, expense.Description, utils.FormatAmount(expense.Amount)),
		}).Error
	})
	if errors.Is(err, ErrExpenseNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense deleted", "team_code", group.TeamCode, "expense_id", id)
	events.Emit(ctx, events.New(events.TypeExpenseDeleted, group.TeamCode, actor, id.String()))
	return nil
}

// ListExpenses returns the group's expenses, newest first.
func ListExpenses(ctx context.Context, group *models.Group) ([]models.Expense, error) {
	var expenses []models.Expense
	err := database.DB.WithContext(ctx).
		Preload("Splits").
		Where("group_id = ?", group.ID).
		Order("created_at DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}
