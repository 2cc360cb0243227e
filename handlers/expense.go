package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SriHarshaKodavati/openBill/models"
	"github.com/SriHarshaKodavati/openBill/services"
	"github.com/SriHarshaKodavati/openBill/utils"
)

// POST /api/groups/:code/expenses
func CreateExpense(c *gin.Context) {
	group, ok := loadGroup(c)
	if !ok {
		return
	}

	var req models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Please fill all fields")
		return
	}

	_, actor := utils.GetCurrentMember(c)
	expense, err := services.AddExpense(c.Request.Context(), group, actor, req)
	if err != nil {
		respondError(c, err, "Failed to create expense")
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Expense added", expense.ToResponse())
}

// GET /api/groups/:code/expenses
func GetGroupExpenses(c *gin.Context) {
	group, ok := loadGroup(c)
	if !ok {
		return
	}

	expenses, err := services.ListExpenses(c.Request.Context(), group)
	if err != nil {
		respondError(c, err, "Failed to load expenses")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", expenseResponses(expenses))
}

// DELETE /api/groups/:code/expenses/:id
func DeleteExpense(c *gin.Context) {
	group, ok := loadGroup(c)
	if !ok {
		return
	}

	_, actor := utils.GetCurrentMember(c)
	if err := services.DeleteExpense(c.Request.Context(), group, actor, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete expense")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Expense deleted", nil)
}
