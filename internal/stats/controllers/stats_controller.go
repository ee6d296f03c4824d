package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dorushugo/pitie-salpetriere-analysis-sub001/internal/stats/services"
)

type StatsController struct {
	Service *services.StatsService
}

func NewStatsController(svc *services.StatsService) *StatsController {
	return &StatsController{Service: svc}
}

// GetDailyStats handles GET /api/stats/daily
func (sc *StatsController) GetDailyStats(c echo.Context) error {
	filter, err := datasetFilter(c)
	if err != nil {
		return invalidFilter(c, err)
	}
	stats, err := sc.Service.DailyStatsFiltered(filter)
	if err != nil {
		return datasetError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Daily stats retrieved successfully",
		"data":    stats,
	})
}

// GetServiceStats handles GET /api/stats/services
func (sc *StatsController) GetServiceStats(c echo.Context) error {
	filter, err := datasetFilter(c)
	if err != nil {
		return invalidFilter(c, err)
	}
	stats, err := sc.Service.ServiceStatsFiltered(filter)
	if err != nil {
		return datasetError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Service stats retrieved successfully",
		"data":    stats,
	})
}

// GetResourceStats handles GET /api/stats/resources
func (sc *StatsController) GetResourceStats(c echo.Context) error {
	filter, err := datasetFilter(c)
	if err != nil {
		return invalidFilter(c, err)
	}
	stats, err := sc.Service.ResourceStatsFiltered(filter)
	if err != nil {
		return datasetError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Resource stats retrieved successfully",
		"data":    stats,
	})
}

// GetMonthlyStats handles GET /api/stats/monthly
func (sc *StatsController) GetMonthlyStats(c echo.Context) error {
	filter, err := datasetFilter(c)
	if err != nil {
		return invalidFilter(c, err)
	}
	stats, err := sc.Service.MonthlyStatsFiltered(filter)
	if err != nil {
		return datasetError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Monthly stats retrieved successfully",
		"data":    stats,
	})
}

// GetServiceNames handles GET /api/services
func (sc *StatsController) GetServiceNames(c echo.Context) error {
	names, err := sc.Service.ServiceNames()
	if err != nil {
		return datasetError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Service list retrieved successfully",
		"data":    names,
	})
}

// GetDatasets handles GET /api/stats/datasets, returning the three raw tables
// narrowed by the shared filter parameters.
func (sc *StatsController) GetDatasets(c echo.Context) error {
	filter, err := datasetFilter(c)
	if err != nil {
		return invalidFilter(c, err)
	}
	out, err := sc.Service.FilterDatasets(filter)
	if err != nil {
		return datasetError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Datasets retrieved successfully",
		"data":    out,
	})
}

// datasetFilter reads the optional start_date, end_date (YYYY-MM-DD,
// inclusive) and service query parameters shared by the stats endpoints.
func datasetFilter(c echo.Context) (services.DatasetFilter, error) {
	filter := services.DatasetFilter{Service: c.QueryParam("service")}

	if s := c.QueryParam("start_date"); s != "" {
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return filter, fmt.Errorf("invalid start_date, expected YYYY-MM-DD")
		}
		filter.StartDate = s
	}
	if s := c.QueryParam("end_date"); s != "" {
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return filter, fmt.Errorf("invalid end_date, expected YYYY-MM-DD")
		}
		filter.EndDate = s
	}
	return filter, nil
}

func invalidFilter(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"status":  http.StatusBadRequest,
		"message": err.Error(),
		"data":    nil,
	})
}

func datasetError(c echo.Context, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return c.JSON(http.StatusNotFound, echo.Map{
			"status":  http.StatusNotFound,
			"message": "dataset file not found: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"status":  http.StatusInternalServerError,
		"message": "failed to load dataset: " + err.Error(),
		"data":    nil,
	})
}
