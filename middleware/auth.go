package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SriHarshaKodavati/openBill/utils"
)

// AuthRequired accepts a member token and, when the route has a :code
// parameter, requires the token to belong to that group.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			utils.Unauthorized(c, "Authorization token required")
			return
		}

		claims, err := utils.ParseToken(secret, tokenString)
		if err != nil {
			utils.Unauthorized(c, "Invalid or expired token")
			return
		}

		if code := c.Param("code"); code != "" && utils.NormalizeTeamCode(code) != claims.TeamCode {
			utils.Forbidden(c, "You are not a member of this group")
			return
		}

		c.Set(utils.ContextTeamCode, claims.TeamCode)
		c.Set(utils.ContextMember, claims.Member)
		c.Next()
	}
}
