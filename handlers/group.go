package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SriHarshaKodavati/openBill/models"
	"github.com/SriHarshaKodavati/openBill/services"
	"github.com/SriHarshaKodavati/openBill/utils"
)

// POST /api/groups
func CreateGroup(c *gin.Context) {
	var req models.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Please fill all fields")
		return
	}

	group, err := services.CreateGroup(c.Request.Context(), req.Name, req.MemberName)
	if err != nil {
		respondError(c, err, "Failed to create group")
		return
	}

	respondWithSession(c, http.StatusCreated, "Group created", group, group.MemberNames()[0])
}

// POST /api/groups/join
func JoinGroup(c *gin.Context) {
	var req models.JoinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Please fill all fields")
		return
	}

	group, joined, err := services.JoinGroup(c.Request.Context(), req.TeamCode, req.MemberName)
	if err != nil {
		respondError(c, err, "Failed to join group")
		return
	}

	message := "Welcome back"
	if joined {
		message = "Joined group"
	}
	respondWithSession(c, http.StatusOK, message, group, cleanMember(req.MemberName))
}

// GET /api/groups/:code
func GetGroup(c *gin.Context) {
	group, ok := loadGroup(c)
	if !ok {
		return
	}

	expenses, err := services.ListExpenses(c.Request.Context(), group)
	if err != nil {
		respondError(c, err, "Failed to load expenses")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", models.GroupDetailResponse{
		Group:    group.ToResponse(),
		Expenses: expenseResponses(expenses),
	})
}
