package models

import (
	"strings"

	"github.com/dorushugo/pitie-salpetriere-analysis-sub001/pkg/csvtable"
)

// DailyStat is one row of daily_stats.csv: hospital-wide aggregates for a day.
type DailyStat struct {
	Date       string  `json:"date"`
	Admissions int     `json:"admissions"`
	AvgStay    float64 `json:"duree_moyenne"`
	TotalCost  float64 `json:"cout_total"`
	AvgCost    float64 `json:"cout_moyen"`
	TotalStaff int     `json:"personnel_total"`
	AvgAge     float64 `json:"age_moyen"`
	Weekday    int     `json:"jour_semaine"`
	Month      int     `json:"mois_num"`
	Year       int     `json:"annee"`
	Week       int     `json:"semaine"`
	DayName    string  `json:"jour_nom"`
}

// ServiceDailyStat is one row of service_daily_stats.csv, keyed by department.
type ServiceDailyStat struct {
	Date        string  `json:"date"`
	Service     string  `json:"service"`
	Admissions  int     `json:"admissions"`
	AvgStay     float64 `json:"duree_moyenne"`
	TotalCost   float64 `json:"cout_total"`
	SevereCases int     `json:"cas_graves"`
}

// ResourceStat is one row of resources.csv: bed occupancy and staffing for a
// department on a day.
type ResourceStat struct {
	Date           string  `json:"date"`
	Service        string  `json:"service"`
	TotalBeds      int     `json:"lits_total"`
	OccupiedBeds   int     `json:"lits_occupes"`
	AvailableBeds  int     `json:"lits_disponibles"`
	OccupancyRate  float64 `json:"taux_occupation"`
	TotalStaff     int     `json:"personnel_total"`
	AvailableStaff int     `json:"personnel_disponible"`
	BusyStaff      int     `json:"personnel_occupe"`
}

// MonthlyStat is one row of monthly_stats.csv.
type MonthlyStat struct {
	Month      string  `json:"mois"`
	Admissions int     `json:"admissions"`
	AvgStay    float64 `json:"duree_moyenne"`
	TotalCost  float64 `json:"cout_total"`
	AvgAge     float64 `json:"age_moyen"`
}

func DailyStatFromRecord(rec csvtable.Record) DailyStat {
	return DailyStat{
		Date:       rec.String("date"),
		Admissions: rec.Int("admissions"),
		AvgStay:    rec.Float("duree_moyenne"),
		TotalCost:  rec.Float("cout_total"),
		AvgCost:    rec.Float("cout_moyen"),
		TotalStaff: rec.Int("personnel_total"),
		AvgAge:     rec.Float("age_moyen"),
		Weekday:    rec.Int("jour_semaine"),
		Month:      monthNumber(rec),
		Year:       rec.Int("annee"),
		Week:       rec.Int("semaine"),
		DayName:    rec.String("jour_nom"),
	}
}

func ServiceDailyStatFromRecord(rec csvtable.Record) ServiceDailyStat {
	return ServiceDailyStat{
		Date:        rec.String("date"),
		Service:     rec.String("service"),
		Admissions:  rec.Int("admissions"),
		AvgStay:     rec.Float("duree_moyenne"),
		TotalCost:   rec.Float("cout_total"),
		SevereCases: rec.Int("cas_graves"),
	}
}

func ResourceStatFromRecord(rec csvtable.Record) ResourceStat {
	return ResourceStat{
		Date:           rec.String("date"),
		Service:        rec.String("service"),
		TotalBeds:      rec.Int("lits_total"),
		OccupiedBeds:   rec.Int("lits_occupes"),
		AvailableBeds:  rec.Int("lits_disponibles"),
		OccupancyRate:  rec.Float("taux_occupation"),
		TotalStaff:     rec.Int("personnel_total"),
		AvailableStaff: rec.Int("personnel_disponible"),
		BusyStaff:      rec.Int("personnel_occupe"),
	}
}

func MonthlyStatFromRecord(rec csvtable.Record) MonthlyStat {
	return MonthlyStat{
		Month:      rec.String("mois"),
		Admissions: rec.Int("admissions"),
		AvgStay:    rec.Float("duree_moyenne"),
		TotalCost:  rec.Float("cout_total"),
		AvgAge:     rec.Float("age_moyen"),
	}
}

// In daily_stats.csv the "mois" column is a month number, but the parser keeps
// it as a string because monthly_stats.csv uses the same name for "YYYY-MM".
func monthNumber(rec csvtable.Record) int {
	s := rec.String("mois")
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// DateOnly truncates a date string to its date portion, cutting at the first
// 'T' or space ("2024-06-01 00:00:00" and "2024-06-01T00:00:00" → "2024-06-01").
func DateOnly(s string) string {
	if i := strings.IndexAny(s, "T "); i >= 0 {
		return s[:i]
	}
	return s
}
