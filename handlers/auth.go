package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SriHarshaKodavati/openBill/config"
	"github.com/SriHarshaKodavati/openBill/models"
	"github.com/SriHarshaKodavati/openBill/utils"
)

// respondWithSession issues a member token for group and writes the session.
func respondWithSession(c *gin.Context, status int, message string, group *models.Group, member string) {
	token, err := utils.GenerateToken(config.AppConfig.JWTSecret, group.TeamCode, member, config.AppConfig.TokenTTL)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "Failed to generate token", "error", err)
		utils.InternalError(c, "Failed to generate token")
		return
	}

	utils.SuccessResponse(c, status, message, models.SessionResponse{
		Group:  group.ToResponse(),
		Member: member,
		Token:  token,
	})
}

// GET /api/session
func GetSession(c *gin.Context) {
	teamCode, member := utils.GetCurrentMember(c)
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"teamCode": teamCode,
		"member":   member,
	})
}
