package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SriHarshaKodavati/openBill/config"
	"github.com/SriHarshaKodavati/openBill/middleware"
)

// NewRouter wires every route. reg receives the HTTP collectors and is served
// on /metrics.
func NewRouter(cfg *config.Config, logger *slog.Logger, reg *prometheus.Registry) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.NewHTTPMetrics(reg).Handler())
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": cfg.AppName,
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	auth := middleware.AuthRequired(cfg.JWTSecret)

	// ==========================================
	// GROUP ROUTES (public: the team code is the invitation)
	// ==========================================
	api := r.Group("/api")
	{
		api.POST("/groups", CreateGroup)
		api.POST("/groups/join", JoinGroup)
		api.GET("/groups/:code", GetGroup)
		api.GET("/groups/:code/expenses", GetGroupExpenses)
		api.GET("/groups/:code/balances", GetGroupBalances)
		api.GET("/groups/:code/members/:name", GetMemberDetails)
		api.GET("/groups/:code/settle-up", GetSettleUp)
		api.GET("/groups/:code/activity", GetGroupActivity)
	}

	// ==========================================
	// MEMBER ROUTES (token for the same group)
	// ==========================================
	member := api.Group("")
	member.Use(auth)
	{
		member.GET("/session", GetSession)
		member.POST("/groups/:code/expenses", CreateExpense)
		member.DELETE("/groups/:code/expenses/:id", DeleteExpense)
		member.POST("/groups/:code/share", ShareGroup)
	}

	return r
}
