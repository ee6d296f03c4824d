package controllers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/dorushugo/pitie-salpetriere-analysis-sub001/config"
	dashboardservices "github.com/dorushugo/pitie-salpetriere-analysis-sub001/internal/dashboard/services"
	"github.com/dorushugo/pitie-salpetriere-analysis-sub001/pkg/storage/filestore"
	"github.com/dorushugo/pitie-salpetriere-analysis-sub001/pkg/utils"
	"github.com/dorushugo/pitie-salpetriere-analysis-sub001/ws"
)

type ManagementController struct {
	Cfg   *config.Config
	Store *filestore.Store
	KPIs  *dashboardservices.KPIService
	Hub   *ws.Hub
}

func NewManagementController(cfg *config.Config, store *filestore.Store, kpis *dashboardservices.KPIService, hub *ws.Hub) *ManagementController {
	return &ManagementController{Cfg: cfg, Store: store, KPIs: kpis, Hub: hub}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/management/login. The single management account is
// configured through the environment; the password is stored as a bcrypt hash.
func (mc *ManagementController) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload",
			"data":    nil,
		})
	}

	cfg := mc.Cfg
	if cfg.AdminUsername == "" || cfg.AdminPasswordHash == "" {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"status":  http.StatusInternalServerError,
			"message": "Management account is not configured",
			"data":    nil,
		})
	}
	// Both checks always run so a rejected login takes the same time whether
	// the username or the password was wrong.
	usernameOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(cfg.AdminUsername)) == 1
	passwordErr := bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte(req.Password))
	if !usernameOK || passwordErr != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"status":  http.StatusUnauthorized,
			"message": "Invalid credentials",
			"data":    nil,
		})
	}

	token, err := utils.GenerateJWTToken(req.Username, "management", time.Now().Add(24*time.Hour))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"status":  http.StatusInternalServerError,
			"message": "Failed to generate token: " + err.Error(),
			"data":    nil,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Login successful",
		"data":    echo.Map{"token": token},
	})
}

// Refresh handles POST /api/management/refresh. It drops the dataset cache,
// recomputes the alerts and pushes them to connected dashboard clients.
func (mc *ManagementController) Refresh(c echo.Context) error {
	mc.Store.Flush()

	alerts, err := mc.KPIs.CurrentAlerts()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"status":  http.StatusInternalServerError,
			"message": "Cache flushed but alert recomputation failed: " + err.Error(),
			"data":    nil,
		})
	}
	if mc.Hub != nil {
		mc.Hub.BroadcastEvent(ws.Event{Event: "data_refresh", Data: alerts})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Datasets reloaded",
		"data":    echo.Map{"alerts": len(alerts)},
	})
}
