package api

import (
	"log"
	stdhttp "net/http"

	intconfig "dealerpos/internal/config"
	"dealerpos/internal/domain/models"
	h "dealerpos/internal/http/handlers"
	"dealerpos/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, hd h.Handler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	requireAuth := middleware.RequireAuth(hd.Auth)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	loginLimiter := middleware.NewIPRateLimiter(env.LoginRatePerMin)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", hd.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", loginLimiter.Middleware(), hd.Login)
		auth.GET("/me", requireAuth, hd.Me)

		// Users
		users := api.Group("/users", requireAuth, adminOnly)
		users.POST("", hd.CreateUser)

		// Reference data
		reference := api.Group("/reference", requireAuth)
		reference.GET("", hd.GetReference)
		reference.POST("/refresh", adminOnly, hd.RefreshReference)
		reference.POST("/:kind", adminOnly, hd.AddReferenceEntry)

		// Orders
		orders := api.Group("/orders", requireAuth)
		orders.POST("/quote", hd.QuoteOrder)
		orders.POST("", hd.SubmitOrder)

		// Ledger
		records := api.Group("/sales-records", requireAuth)
		records.GET("", hd.ListSalesRecords)
		records.GET("/export", adminOnly, hd.ExportSalesRecords)
	}

	h.SetRouter(r)
	return r
}
