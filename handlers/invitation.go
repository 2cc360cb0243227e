package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SriHarshaKodavati/openBill/models"
	"github.com/SriHarshaKodavati/openBill/services"
	"github.com/SriHarshaKodavati/openBill/utils"
)

// POST /api/groups/:code/share
func ShareGroup(c *gin.Context) {
	group, ok := loadGroup(c)
	if !ok {
		return
	}

	var req models.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "A valid email is required")
		return
	}

	_, sender := utils.GetCurrentMember(c)
	if err := services.ShareGroup(c.Request.Context(), group, sender, req); err != nil {
		respondError(c, err, "Failed to send email")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Invitation sent to "+req.Email, nil)
}
