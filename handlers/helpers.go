package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SriHarshaKodavati/openBill/models"
	"github.com/SriHarshaKodavati/openBill/services"
)

// loadGroup resolves :code and writes the error response when it fails.
func loadGroup(c *gin.Context) (*models.Group, bool) {
	group, err := services.FindGroup(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err, "Failed to load group")
		return nil, false
	}
	return group, true
}

func loadSnapshot(c *gin.Context) (*services.Snapshot, bool) {
	group, ok := loadGroup(c)
	if !ok {
		return nil, false
	}
	snapshot, err := services.LoadSnapshot(c.Request.Context(), group)
	if err != nil {
		respondError(c, err, "Failed to compute balances")
		return nil, false
	}
	return snapshot, true
}

func cleanMember(name string) string {
	return strings.TrimSpace(name)
}

func expenseResponses(expenses []models.Expense) []models.ExpenseResponse {
	out := make([]models.ExpenseResponse, len(expenses))
	for i := range expenses {
		out[i] = expenses[i].ToResponse()
	}
	return out
}
