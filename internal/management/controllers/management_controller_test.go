package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dorushugo/pitie-salpetriere-analysis-sub001/config"
	dashboardservices "github.com/dorushugo/pitie-salpetriere-analysis-sub001/internal/dashboard/services"
	statsservices "github.com/dorushugo/pitie-salpetriere-analysis-sub001/internal/stats/services"
	"github.com/dorushugo/pitie-salpetriere-analysis-sub001/pkg/storage/filestore"
	"github.com/dorushugo/pitie-salpetriere-analysis-sub001/pkg/utils"
	"github.com/dorushugo/pitie-salpetriere-analysis-sub001/ws"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.DefaultCost)
	require.NoError(t, err)
	return &config.Config{
		AdminUsername:     "direction",
		AdminPasswordHash: string(hash),
	}
}

func loginRequestContext(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/api/management/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	mc := NewManagementController(testConfig(t), filestore.New(t.TempDir()), nil, nil)

	c, rec := loginRequestContext(echo.New(), `{"username":"direction","password":"s3cret"}`)
	require.NoError(t, mc.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotEmpty(t, env.Data.Token)

	claims, err := utils.ValidateJWTToken(env.Data.Token)
	require.NoError(t, err)
	assert.Equal(t, "direction", claims.Username)
	assert.Equal(t, "management", claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	mc := NewManagementController(testConfig(t), filestore.New(t.TempDir()), nil, nil)

	c, rec := loginRequestContext(echo.New(), `{"username":"direction","password":"nope"}`)
	require.NoError(t, mc.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_WrongUsername(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	mc := NewManagementController(testConfig(t), filestore.New(t.TempDir()), nil, nil)

	// A wrong username with the right password gets the same rejection as a
	// wrong password.
	c, rec := loginRequestContext(echo.New(), `{"username":"admin","password":"s3cret"}`)
	require.NoError(t, mc.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var env struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "Invalid credentials", env.Message)
}

func TestLogin_UnconfiguredAccount(t *testing.T) {
	mc := NewManagementController(&config.Config{}, filestore.New(t.TempDir()), nil, nil)

	c, rec := loginRequestContext(echo.New(), `{"username":"direction","password":"s3cret"}`)
	require.NoError(t, mc.Login(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRefresh(t *testing.T) {
	dir := t.TempDir()
	writeDataset := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	writeDataset(filestore.DailyStatsFile, "date,admissions\n2024-06-14,12\n")
	writeDataset(filestore.ResourcesFile,
		"date,service,taux_occupation,personnel_disponible\n2024-06-14,Urgences,92,30\n")

	store := filestore.New(dir)
	kpis := dashboardservices.NewKPIService(statsservices.NewStatsService(store))
	hub := ws.NewHub()
	go hub.Run()
	mc := NewManagementController(testConfig(t), store, kpis, hub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/management/refresh", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, mc.Refresh(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data struct {
			Alerts int `json:"alerts"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, 1, env.Data.Alerts)
}
