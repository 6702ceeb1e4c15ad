package routes

import (
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/imudaynigam/finance-tracker-techbridge/cache"
	"github.com/imudaynigam/finance-tracker-techbridge/handlers"
	"github.com/imudaynigam/finance-tracker-techbridge/middleware"
	"github.com/imudaynigam/finance-tracker-techbridge/services"
)

// SetupAuthRoutes sets up public authentication routes with a stricter rate
// limit.
func SetupAuthRoutes(rg *gin.RouterGroup, db *sql.DB, store cache.Store) {
	authHandler := &handlers.AuthHandler{Users: services.NewUserService(db, store)}

	auth := rg.Group("/auth")
	auth.Use(middleware.RateLimiter(20, time.Minute))

	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", middleware.AuthMiddleware(), authHandler.Me)
}

// SetupUserRoutes sets up protected self-service user routes (2FA).
func SetupUserRoutes(rg *gin.RouterGroup, db *sql.DB, store cache.Store) {
	userHandler := &handlers.UserHandler{Users: services.NewUserService(db, store)}

	rg.POST("/user/2fa/setup", userHandler.SetupTOTP)
	rg.POST("/user/2fa/verify", userHandler.VerifyTOTP)
	rg.POST("/user/2fa/disable", userHandler.DisableTOTP)
}

// SetupTransactionRoutes sets up protected transaction CRUD. Reads are open
// to every role (read-only sees everything); writes require admin or user.
func SetupTransactionRoutes(rg *gin.RouterGroup, db *sql.DB, store cache.Store, ws *handlers.WSHandler) {
	h := &handlers.TransactionHandler{
		Txns: services.NewTransactionService(db, store),
		WS:   ws,
	}

	rg.GET("/transactions", h.List)
	rg.GET("/transactions/:id", h.Get)
	rg.POST("/transactions", middleware.RequireWriter(), h.Create)
	rg.PUT("/transactions/:id", middleware.RequireWriter(), h.Update)
	rg.DELETE("/transactions/:id", middleware.RequireWriter(), h.Delete)
}

// SetupCategoryRoutes sets up the shared category list (all roles) and
// admin-only category management.
func SetupCategoryRoutes(rg *gin.RouterGroup, db *sql.DB, store cache.Store) {
	h := &handlers.CategoryHandler{
		Categories: services.NewCategoryService(db, store),
		Suggester:  services.NewSuggesterService(db),
	}

	rg.GET("/categories", h.List)
	rg.GET("/categories/suggest", h.Suggest)
	rg.POST("/categories", middleware.RequireAdmin(), h.Create)
	rg.PUT("/categories/:id", middleware.RequireAdmin(), h.Update)
	rg.DELETE("/categories/:id", middleware.RequireAdmin(), h.Delete)
}

// SetupAnalyticsRoutes sets up the role-scoped analytics endpoints.
func SetupAnalyticsRoutes(rg *gin.RouterGroup, db *sql.DB, store cache.Store) {
	txns := services.NewTransactionService(db, store)
	h := &handlers.AnalyticsHandler{Analytics: services.NewAnalyticsService(txns, store)}

	rg.GET("/analytics/transactions", h.Totals)
	rg.GET("/analytics/monthly", h.Monthly)
	rg.GET("/analytics/yearly", h.Yearly)
	rg.GET("/analytics/categories", h.Categories)
}

// SetupAdminRoutes sets up admin-only routes: system overview, system
// analytics and user management.
func SetupAdminRoutes(rg *gin.RouterGroup, db *sql.DB, store cache.Store) {
	users := services.NewUserService(db, store)
	txns := services.NewTransactionService(db, store)
	categories := services.NewCategoryService(db, store)

	h := &handlers.AdminHandler{
		Admin: services.NewAdminService(users, txns, categories),
		Users: users,
	}

	admin := rg.Group("/admin")
	admin.Use(middleware.RequireAdmin())

	admin.GET("/overview", h.Overview)
	admin.GET("/analytics", h.Analytics)
	admin.GET("/users", h.ListUsers)
	admin.GET("/users/:id", h.UserDetails)
	admin.POST("/users", h.CreateUser)
	admin.PUT("/users/:id", h.UpdateUser)
	admin.DELETE("/users/:id", h.DeleteUser)
}
