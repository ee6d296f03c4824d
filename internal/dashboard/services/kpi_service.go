package services

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/dorushugo/pitie-salpetriere-analysis-sub001/internal/dashboard/models"
	statsmodels "github.com/dorushugo/pitie-salpetriere-analysis-sub001/internal/stats/models"
	statsservices "github.com/dorushugo/pitie-salpetriere-analysis-sub001/internal/stats/services"
)

// Occupancy thresholds (percent) above which a department raises an alert.
const (
	occupancyAlertThreshold    = 85.0
	occupancyCriticalThreshold = 90.0
)

// Week-over-week variation (percent) beyond which the trend leaves "stable".
const trendThreshold = 5.0

const weekWindow = 7

var ErrNoData = errors.New("no daily stats available")

type KPIService struct {
	Stats *statsservices.StatsService
}

func NewKPIService(stats *statsservices.StatsService) *KPIService {
	return &KPIService{Stats: stats}
}

// ComputeKPIs builds the dashboard summary from the most recent 14 days of
// daily stats plus today's resource records. Everything is recomputed per
// call; only the underlying file reads are cached.
func (s *KPIService) ComputeKPIs() (*models.DashboardKPIs, error) {
	daily, err := s.Stats.DailyStats()
	if err != nil {
		return nil, err
	}
	if len(daily) == 0 {
		return nil, ErrNoData
	}
	sortDailyDesc(daily)

	thisWeek := sumAdmissions(window(daily, 0, weekWindow))
	lastWeek := sumAdmissions(window(daily, weekWindow, 2*weekWindow))
	// The trend is classified on the exact variation; rounding happens only
	// on the reported figure, so a variation of 5.02% still counts as rising.
	variation := rawVariationPct(thisWeek, lastWeek)

	today := statsmodels.DateOnly(daily[0].Date)
	resources, err := s.Stats.ResourceStats()
	if err != nil {
		return nil, err
	}
	todays := resourcesForDate(resources, today)

	var occupancySum float64
	availableStaff := 0
	for _, r := range todays {
		occupancySum += r.OccupancyRate
		availableStaff += r.AvailableStaff
	}
	avgOccupancy := 0.0
	if len(todays) > 0 {
		avgOccupancy = round1(occupancySum / float64(len(todays)))
	}

	return &models.DashboardKPIs{
		TodayAdmissions:    daily[0].Admissions,
		WeekAdmissions:     thisWeek,
		LastWeekAdmissions: lastWeek,
		AvgOccupancy:       avgOccupancy,
		AvailableStaff:     availableStaff,
		Alerts:             buildAlerts(todays),
		Trend:              classifyTrend(variation),
		VariationPct:       round1(variation),
	}, nil
}

// CurrentAlerts recomputes the occupancy alerts for the most recent day.
func (s *KPIService) CurrentAlerts() ([]models.Alert, error) {
	daily, err := s.Stats.DailyStats()
	if err != nil {
		return nil, err
	}
	if len(daily) == 0 {
		return nil, ErrNoData
	}
	sortDailyDesc(daily)

	resources, err := s.Stats.ResourceStats()
	if err != nil {
		return nil, err
	}
	today := statsmodels.DateOnly(daily[0].Date)
	return buildAlerts(resourcesForDate(resources, today)), nil
}

func sortDailyDesc(daily []statsmodels.DailyStat) {
	sort.SliceStable(daily, func(i, j int) bool {
		return statsmodels.DateOnly(daily[i].Date) > statsmodels.DateOnly(daily[j].Date)
	})
}

func window(daily []statsmodels.DailyStat, from, to int) []statsmodels.DailyStat {
	if from > len(daily) {
		from = len(daily)
	}
	if to > len(daily) {
		to = len(daily)
	}
	return daily[from:to]
}

func sumAdmissions(daily []statsmodels.DailyStat) int {
	total := 0
	for _, d := range daily {
		total += d.Admissions
	}
	return total
}

// rawVariationPct is the unrounded week-over-week change in percent. A zero
// previous week cannot divide: the variation is 0 when both weeks are empty
// and 100 when admissions appeared from nothing.
func rawVariationPct(thisWeek, lastWeek int) float64 {
	if lastWeek == 0 {
		if thisWeek == 0 {
			return 0
		}
		return 100
	}
	return float64(thisWeek-lastWeek) / float64(lastWeek) * 100
}

// variationPct is rawVariationPct rounded to one decimal for display.
func variationPct(thisWeek, lastWeek int) float64 {
	return round1(rawVariationPct(thisWeek, lastWeek))
}

func classifyTrend(variation float64) models.TrendDirection {
	switch {
	case variation > trendThreshold:
		return models.TrendRising
	case variation < -trendThreshold:
		return models.TrendFalling
	default:
		return models.TrendStable
	}
}

func resourcesForDate(resources []statsmodels.ResourceStat, date string) []statsmodels.ResourceStat {
	var out []statsmodels.ResourceStat
	for _, r := range resources {
		if statsmodels.DateOnly(r.Date) == date {
			out = append(out, r)
		}
	}
	return out
}

func buildAlerts(resources []statsmodels.ResourceStat) []models.Alert {
	alerts := make([]models.Alert, 0)
	for _, r := range resources {
		if r.OccupancyRate <= occupancyAlertThreshold {
			continue
		}
		severity := models.SeverityWarning
		message := fmt.Sprintf("Taux d'occupation élevé pour %s : %.1f%%", r.Service, r.OccupancyRate)
		if r.OccupancyRate > occupancyCriticalThreshold {
			severity = models.SeverityCritical
			message = fmt.Sprintf("Taux d'occupation critique pour %s : %.1f%%", r.Service, r.OccupancyRate)
		}
		alerts = append(alerts, models.Alert{
			ID:       uuid.NewString(),
			Type:     "occupancy",
			Service:  r.Service,
			Message:  message,
			Severity: severity,
			Date:     statsmodels.DateOnly(r.Date),
		})
	}
	return alerts
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
