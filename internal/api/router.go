// Package api assembles the HTTP surface for the CP valuation service.
package api

import (
	"cp-valuation/internal/api/handlers"
	"cp-valuation/internal/api/middleware"
	"cp-valuation/internal/logger"

	"github.com/gin-gonic/gin"
)

// NewRouter registers every route and middleware.
func NewRouter(log *logger.Logger, origins []string) *gin.Engine {
	router := gin.New()
	router.Use(middleware.CORS(origins))
	router.Use(middleware.Logger(log))
	router.Use(middleware.ErrorHandler(log))

	cpHandler := handlers.NewCPHandler(log)

	router.GET("/health", handlers.Health)

	api := router.Group("/api/v1")
	{
		api.POST("/cp/parse", cpHandler.ParseDates)
		api.GET("/cp/calendar/:year", cpHandler.ListUtilities)
		api.GET("/cp/calendar/:year/:utility", cpHandler.GetCalendar)
		api.POST("/cp/objective", cpHandler.Objective)
		api.POST("/cp/report", cpHandler.Report)
	}
	return router
}
