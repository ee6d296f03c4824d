package models

// AlertSeverity is the severity level of a derived alert.
type AlertSeverity string

const (
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// TrendDirection classifies the week-over-week admission change.
type TrendDirection string

const (
	TrendRising  TrendDirection = "rising"
	TrendFalling TrendDirection = "falling"
	TrendStable  TrendDirection = "stable"
)

// Alert is an ephemeral occupancy alert, recomputed from the current resource
// stats on every request. Nothing is persisted or deduplicated.
type Alert struct {
	ID       string        `json:"id"`
	Type     string        `json:"type"`
	Service  string        `json:"service"`
	Message  string        `json:"message"`
	Severity AlertSeverity `json:"severity"`
	Date     string        `json:"date"`
}

// DashboardKPIs bundles the dashboard summary cards.
type DashboardKPIs struct {
	TodayAdmissions    int            `json:"admissions_today"`
	WeekAdmissions     int            `json:"admissions_week"`
	LastWeekAdmissions int            `json:"admissions_last_week"`
	AvgOccupancy       float64        `json:"avg_occupancy"`
	AvailableStaff     int            `json:"available_staff"`
	Alerts             []Alert        `json:"alerts"`
	Trend              TrendDirection `json:"trend"`
	VariationPct       float64        `json:"variation_pct"`
}
