package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SriHarshaKodavati/openBill/services"
	"github.com/SriHarshaKodavati/openBill/utils"
)

// GET /api/groups/:code/activity — activity feed for a group
func GetGroupActivity(c *gin.Context) {
	group, ok := loadGroup(c)
	if !ok {
		return
	}

	var pagination utils.PaginationQuery
	c.ShouldBindQuery(&pagination)

	activities, err := services.ListActivity(c.Request.Context(), group, pagination)
	if err != nil {
		respondError(c, err, "Failed to load activity")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", activities)
}
