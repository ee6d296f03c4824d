package controllers

import (
	"errors"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/dorushugo/pitie-salpetriere-analysis-sub001/internal/dashboard/services"
)

type DashboardController struct {
	Service *services.KPIService
}

func NewDashboardController(svc *services.KPIService) *DashboardController {
	return &DashboardController{Service: svc}
}

// GetKPIs handles GET /api/dashboard/kpis
func (dc *DashboardController) GetKPIs(c echo.Context) error {
	kpis, err := dc.Service.ComputeKPIs()
	if err != nil {
		return kpiError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Dashboard KPIs computed successfully",
		"data":    kpis,
	})
}

// GetAlerts handles GET /api/dashboard/alerts
func (dc *DashboardController) GetAlerts(c echo.Context) error {
	alerts, err := dc.Service.CurrentAlerts()
	if err != nil {
		return kpiError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Alerts computed successfully",
		"data":    alerts,
	})
}

func kpiError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrNoData):
		return c.JSON(http.StatusNotFound, echo.Map{
			"status":  http.StatusNotFound,
			"message": "no daily stats available",
			"data":    nil,
		})
	case errors.Is(err, os.ErrNotExist):
		return c.JSON(http.StatusNotFound, echo.Map{
			"status":  http.StatusNotFound,
			"message": "dataset file not found: " + err.Error(),
			"data":    nil,
		})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"status":  http.StatusInternalServerError,
			"message": "failed to compute KPIs: " + err.Error(),
			"data":    nil,
		})
	}
}
