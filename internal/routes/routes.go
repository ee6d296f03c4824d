package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dorushugo/pitie-salpetriere-analysis-sub001/config"
	"github.com/dorushugo/pitie-salpetriere-analysis-sub001/internal/common/middlewares"
	dashboardControllers "github.com/dorushugo/pitie-salpetriere-analysis-sub001/internal/dashboard/controllers"
	dashboardServices "github.com/dorushugo/pitie-salpetriere-analysis-sub001/internal/dashboard/services"
	managementControllers "github.com/dorushugo/pitie-salpetriere-analysis-sub001/internal/management/controllers"
	predictionControllers "github.com/dorushugo/pitie-salpetriere-analysis-sub001/internal/predictions/controllers"
	predictionServices "github.com/dorushugo/pitie-salpetriere-analysis-sub001/internal/predictions/services"
	statsControllers "github.com/dorushugo/pitie-salpetriere-analysis-sub001/internal/stats/controllers"
	statsServices "github.com/dorushugo/pitie-salpetriere-analysis-sub001/internal/stats/services"
	"github.com/dorushugo/pitie-salpetriere-analysis-sub001/pkg/storage/filestore"
	"github.com/dorushugo/pitie-salpetriere-analysis-sub001/ws"
)

// Init wires the services and controllers and registers every route on the
// Echo instance.
func Init(e *echo.Echo, store *filestore.Store, hub *ws.Hub) {
	statsService := statsServices.NewStatsService(store)
	kpiService := dashboardServices.NewKPIService(statsService)
	predictionService := predictionServices.NewPredictionService(store)

	statsController := statsControllers.NewStatsController(statsService)
	dashboardController := dashboardControllers.NewDashboardController(kpiService)
	predictionController := predictionControllers.NewPredictionController(predictionService)
	managementController := managementControllers.NewManagementController(config.LoadConfig(), store, kpiService, hub)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	api := e.Group("/api")

	// **Dashboard**
	dashboard := api.Group("/dashboard")
	dashboard.GET("/kpis", dashboardController.GetKPIs)
	dashboard.GET("/alerts", dashboardController.GetAlerts)

	// **Raw statistics**
	stats := api.Group("/stats")
	stats.GET("/daily", statsController.GetDailyStats)
	stats.GET("/services", statsController.GetServiceStats)
	stats.GET("/resources", statsController.GetResourceStats)
	stats.GET("/monthly", statsController.GetMonthlyStats)
	stats.GET("/datasets", statsController.GetDatasets)

	api.GET("/services", statsController.GetServiceNames)

	// **Predictions**
	predictions := api.Group("/predictions")
	predictions.GET("", predictionController.GetModels)
	predictions.GET("/seasonality", predictionController.GetSeasonality)
	predictions.GET("/:model", predictionController.GetPredictions)

	// **Management**
	management := api.Group("/management")
	management.POST("/login", managementController.Login) // no JWT on login
	management.POST("/refresh", managementController.Refresh, middlewares.JWTMiddleware())

	// **Live updates**
	e.GET("/ws/dashboard", ws.ServeWS(hub))
}
