package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SriHarshaKodavati/openBill/utils"
)

// GET /api/groups/:code/settle-up — netted debts as suggested payments
func GetSettleUp(c *gin.Context) {
	snapshot, ok := loadSnapshot(c)
	if !ok {
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", snapshot.SettleUp())
}
