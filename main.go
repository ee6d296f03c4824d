package main

import (
	"log"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dorushugo/pitie-salpetriere-analysis-sub001/config"
	dashboardServices "github.com/dorushugo/pitie-salpetriere-analysis-sub001/internal/dashboard/services"
	"github.com/dorushugo/pitie-salpetriere-analysis-sub001/internal/routes"
	statsServices "github.com/dorushugo/pitie-salpetriere-analysis-sub001/internal/stats/services"
	"github.com/dorushugo/pitie-salpetriere-analysis-sub001/pkg/storage/filestore"
	"github.com/dorushugo/pitie-salpetriere-analysis-sub001/ws"
)

func main() {
	cfg := config.LoadConfig()

	store := filestore.New(cfg.DataDir)
	defer store.Close()
	if err := store.Watch(); err != nil {
		log.Printf("Warning: file watching disabled: %v", err)
	}

	hub := ws.NewHub()
	go hub.Run()
	go pushRefreshEvents(store, hub)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	routes.Init(e, store, hub)

	log.Printf("Dashboard backend listening on port %s (data dir: %s)", cfg.Port, cfg.DataDir)
	log.Fatal(e.Start(":" + cfg.Port))
}

// pushRefreshEvents recomputes the occupancy alerts whenever a dataset file
// changes on disk and pushes them to connected dashboard clients.
func pushRefreshEvents(store *filestore.Store, hub *ws.Hub) {
	kpiService := dashboardServices.NewKPIService(statsServices.NewStatsService(store))
	for name := range store.Events() {
		log.Printf("Dataset %s changed, notifying clients", name)
		if strings.HasSuffix(name, ".json") {
			hub.BroadcastEvent(ws.Event{Event: "predictions_refresh", Data: name})
			continue
		}
		alerts, err := kpiService.CurrentAlerts()
		if err != nil {
			log.Printf("Warning: alert recomputation after %s change failed: %v", name, err)
			continue
		}
		hub.BroadcastEvent(ws.Event{Event: "data_refresh", Data: alerts})
	}
}
