package routes

import (
	"database/sql"

	"expense-api/handlers"
	"expense-api/middleware"
	"expense-api/services"
	"expense-api/store"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up public authentication routes.
func SetupAuthRoutes(rg *gin.RouterGroup, db *sql.DB) {
	authHandler := &handlers.AuthHandler{DB: db}

	rg.POST("/auth/signup", authHandler.Signup)
	rg.POST("/auth/login", authHandler.Login)
	rg.POST("/auth/refresh", authHandler.Refresh)
}

// SetupExpenseRoutes sets up protected expense CRUD, AI parsing and
// analysis routes.
func SetupExpenseRoutes(rg *gin.RouterGroup, db *sql.DB, ai services.AIClient, wsHandler *handlers.WSHandler) {
	h := handlers.NewExpenseHandler(store.NewPostgresStore(db), ai, wsHandler)

	rg.GET("/expenses", h.List)
	rg.POST("/expenses", h.Create)

	// Fixed segments before the :id routes; both cost a model call, so
	// they carry the tighter AI rate limit
	rg.POST("/expenses/parse", middleware.AIRateLimiter(), h.Parse)
	rg.GET("/expenses/analysis", middleware.AIRateLimiter(), h.Analysis)

	rg.GET("/expenses/:id", h.Get)
	rg.PUT("/expenses/:id", h.Update)
	rg.DELETE("/expenses/:id", h.Delete)

	rg.GET("/ws/expenses", wsHandler.HandleWS)
}

// SetupUserRoutes sets up protected user profile routes.
func SetupUserRoutes(rg *gin.RouterGroup, db *sql.DB) {
	userHandler := &handlers.UserHandler{DB: db}

	rg.GET("/user/profile", userHandler.GetProfile)
	rg.PUT("/user/profile", userHandler.UpdateProfile)
	rg.POST("/user/password", userHandler.ChangePassword)
	rg.POST("/user/2fa/setup", userHandler.SetupTOTP)
	rg.POST("/user/2fa/verify", userHandler.VerifyTOTP)
	rg.POST("/user/2fa/disable", userHandler.DisableTOTP)
}
