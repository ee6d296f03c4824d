package controllers

import (
	"errors"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/dorushugo/pitie-salpetriere-analysis-sub001/internal/predictions/services"
)

type PredictionController struct {
	Service *services.PredictionService
}

func NewPredictionController(svc *services.PredictionService) *PredictionController {
	return &PredictionController{Service: svc}
}

// GetPredictions handles GET /api/predictions/:model where model is one of
// arima, rf, ensemble. The forecast document is returned untouched.
func (pc *PredictionController) GetPredictions(c echo.Context) error {
	raw, err := pc.Service.Predictions(c.Param("model"))
	if err != nil {
		return predictionError(c, err)
	}
	return c.JSONBlob(http.StatusOK, raw)
}

// GetSeasonality handles GET /api/predictions/seasonality
func (pc *PredictionController) GetSeasonality(c echo.Context) error {
	raw, err := pc.Service.Seasonality()
	if err != nil {
		return predictionError(c, err)
	}
	return c.JSONBlob(http.StatusOK, raw)
}

// GetModels handles GET /api/predictions
func (pc *PredictionController) GetModels(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Available prediction models",
		"data":    pc.Service.Models(),
	})
}

func predictionError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrUnknownModel):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  http.StatusBadRequest,
			"message": err.Error(),
			"data":    nil,
		})
	case errors.Is(err, os.ErrNotExist):
		return c.JSON(http.StatusNotFound, echo.Map{
			"status":  http.StatusNotFound,
			"message": "prediction file not found: " + err.Error(),
			"data":    nil,
		})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"status":  http.StatusInternalServerError,
			"message": "failed to load predictions: " + err.Error(),
			"data":    nil,
		})
	}
}
