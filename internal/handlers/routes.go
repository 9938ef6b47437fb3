package handlers

import (
	"github.com/epeers/portfolio-tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the API. Session resolution must already be installed
// on the router with middleware.ValidateSession.
func RegisterRoutes(router gin.IRouter, authHandler *AuthHandler, holdingsHandler *HoldingsHandler, dashboardHandler *DashboardHandler) {
	router.GET("/health", Health)

	// Auth routes
	router.POST("/auth/signup", authHandler.Signup)
	router.POST("/auth/login", authHandler.Login)
	router.POST("/auth/logout", middleware.RequireAuth(), authHandler.Logout)

	authed := router.Group("/", middleware.RequireAuth())

	// Holdings routes
	authed.GET("/holdings", holdingsHandler.Get)
	authed.PUT("/holdings", holdingsHandler.Save)
	authed.POST("/holdings/import", holdingsHandler.Import)

	// Dashboard routes
	authed.GET("/dashboard", dashboardHandler.Get)
	authed.POST("/dashboard", dashboardHandler.Compute)
	authed.GET("/dashboard/charts/:kind", dashboardHandler.Chart)
}
