package handlers

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SriHarshaKodavati/openBill/ledger"
	"github.com/SriHarshaKodavati/openBill/services"
	"github.com/SriHarshaKodavati/openBill/utils"
)

// respondError maps service and ledger errors onto the response envelope.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrMissingFields):
		utils.BadRequest(c, "Please fill all fields")
	case errors.Is(err, services.ErrInvalidInput):
		utils.BadRequest(c, userMessage(err.Error()))
	case errors.Is(err, ledger.ErrInvalidRecord):
		// the client has not been given a record ID yet
		var recErr *ledger.RecordError
		if errors.As(err, &recErr) {
			utils.BadRequest(c, userMessage(recErr.Reason))
			return
		}
		utils.BadRequest(c, "Invalid expense")
	case errors.Is(err, services.ErrGroupNotFound):
		utils.NotFound(c, "Group not found")
	case errors.Is(err, services.ErrExpenseNotFound):
		utils.NotFound(c, "Expense not found")
	case errors.Is(err, services.ErrMemberNotFound), errors.Is(err, ledger.ErrUnknownMember):
		utils.NotFound(c, "Member not found")
	case errors.Is(err, services.ErrForbidden):
		utils.Forbidden(c, "You are not a member of this group")
	case errors.Is(err, services.ErrEmailDisabled):
		utils.ServiceUnavailable(c, "Email is not configured on this server")
	default:
		slog.ErrorContext(c.Request.Context(), fallback, "error", err, "path", c.FullPath())
		utils.InternalError(c, fallback)
	}
}

// userMessage capitalises an error message for display.
func userMessage(msg string) string {
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
