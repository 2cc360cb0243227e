package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SriHarshaKodavati/openBill/utils"
)

// GET /api/groups/:code/members/:name
func GetMemberDetails(c *gin.Context) {
	snapshot, ok := loadSnapshot(c)
	if !ok {
		return
	}

	detail, err := snapshot.MemberDetail(cleanMember(c.Param("name")))
	if err != nil {
		respondError(c, err, "Failed to load member")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", detail)
}
