package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dashboardservices "github.com/dorushugo/pitie-salpetriere-analysis-sub001/internal/dashboard/services"
	statsservices "github.com/dorushugo/pitie-salpetriere-analysis-sub001/internal/stats/services"
	"github.com/dorushugo/pitie-salpetriere-analysis-sub001/pkg/storage/filestore"
)

func newController(t *testing.T, files map[string]string) *DashboardController {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	stats := statsservices.NewStatsService(filestore.New(dir))
	return NewDashboardController(dashboardservices.NewKPIService(stats))
}

func TestGetKPIs(t *testing.T) {
	dc := newController(t, map[string]string{
		filestore.DailyStatsFile: "date,admissions\n2024-06-13,8\n2024-06-14,12\n",
		filestore.ResourcesFile: "date,service,taux_occupation,personnel_disponible\n" +
			"2024-06-14,Urgences,88,30\n",
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/kpis", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, dc.GetKPIs(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Status int `json:"status"`
		Data   struct {
			TodayAdmissions int              `json:"admissions_today"`
			AvgOccupancy    float64          `json:"avg_occupancy"`
			AvailableStaff  int              `json:"available_staff"`
			Trend           string           `json:"trend"`
			Alerts          []map[string]any `json:"alerts"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, http.StatusOK, env.Status)
	assert.Equal(t, 12, env.Data.TodayAdmissions)
	assert.Equal(t, 88.0, env.Data.AvgOccupancy)
	assert.Equal(t, 30, env.Data.AvailableStaff)
	assert.Equal(t, "rising", env.Data.Trend)
	require.Len(t, env.Data.Alerts, 1)
	assert.Equal(t, "warning", env.Data.Alerts[0]["severity"])
}

func TestGetKPIs_EmptyDailyStats(t *testing.T) {
	dc := newController(t, map[string]string{
		filestore.DailyStatsFile: "date,admissions\n",
		filestore.ResourcesFile:  "date,service,taux_occupation\n",
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/kpis", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, dc.GetKPIs(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetAlerts(t *testing.T) {
	dc := newController(t, map[string]string{
		filestore.DailyStatsFile: "date,admissions\n2024-06-14,12\n",
		filestore.ResourcesFile: "date,service,taux_occupation,personnel_disponible\n" +
			"2024-06-14,Réanimation,95,10\n2024-06-14,Cardiologie,70,40\n",
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/alerts", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, dc.GetAlerts(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Len(t, env.Data, 1)
	assert.Equal(t, "critical", env.Data[0]["severity"])
	assert.Equal(t, "Réanimation", env.Data[0]["service"])
}
