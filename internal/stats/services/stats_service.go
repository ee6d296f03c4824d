package services

import (
	"sort"

	"github.com/dorushugo/pitie-salpetriere-analysis-sub001/internal/stats/models"
	"github.com/dorushugo/pitie-salpetriere-analysis-sub001/pkg/storage/filestore"
)

type StatsService struct {
	Store *filestore.Store
}

func NewStatsService(store *filestore.Store) *StatsService {
	return &StatsService{Store: store}
}

func (s *StatsService) DailyStats() ([]models.DailyStat, error) {
	records, err := s.Store.ReadCSV(filestore.DailyStatsFile)
	if err != nil {
		return nil, err
	}
	stats := make([]models.DailyStat, 0, len(records))
	for _, rec := range records {
		stats = append(stats, models.DailyStatFromRecord(rec))
	}
	return stats, nil
}

func (s *StatsService) ServiceStats() ([]models.ServiceDailyStat, error) {
	records, err := s.Store.ReadCSV(filestore.ServiceStatsFile)
	if err != nil {
		return nil, err
	}
	stats := make([]models.ServiceDailyStat, 0, len(records))
	for _, rec := range records {
		stats = append(stats, models.ServiceDailyStatFromRecord(rec))
	}
	return stats, nil
}

func (s *StatsService) ResourceStats() ([]models.ResourceStat, error) {
	records, err := s.Store.ReadCSV(filestore.ResourcesFile)
	if err != nil {
		return nil, err
	}
	stats := make([]models.ResourceStat, 0, len(records))
	for _, rec := range records {
		stats = append(stats, models.ResourceStatFromRecord(rec))
	}
	return stats, nil
}

func (s *StatsService) MonthlyStats() ([]models.MonthlyStat, error) {
	records, err := s.Store.ReadCSV(filestore.MonthlyStatsFile)
	if err != nil {
		return nil, err
	}
	stats := make([]models.MonthlyStat, 0, len(records))
	for _, rec := range records {
		stats = append(stats, models.MonthlyStatFromRecord(rec))
	}
	return stats, nil
}

// ServiceNames returns the distinct department names seen in the per-service
// stats, sorted alphabetically.
func (s *StatsService) ServiceNames() ([]string, error) {
	stats, err := s.ServiceStats()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, st := range stats {
		if _, ok := seen[st.Service]; ok {
			continue
		}
		seen[st.Service] = struct{}{}
		names = append(names, st.Service)
	}
	sort.Strings(names)
	return names, nil
}

// DatasetFilter narrows the three raw tables. Empty fields mean "no bound".
// Dates are inclusive and compared on the date portion (YYYY-MM-DD).
type DatasetFilter struct {
	StartDate string
	EndDate   string
	Service   string
}

type FilteredDatasets struct {
	DailyStats    []models.DailyStat        `json:"daily_stats"`
	ServiceStats  []models.ServiceDailyStat `json:"service_stats"`
	ResourceStats []models.ResourceStat     `json:"resource_stats"`
}

// FilterDatasets loads the three CSV tables and returns the rows matching the
// filter. A range that matches nothing yields empty slices, not an error.
func (s *StatsService) FilterDatasets(f DatasetFilter) (*FilteredDatasets, error) {
	daily, err := s.DailyStatsFiltered(f)
	if err != nil {
		return nil, err
	}
	services, err := s.ServiceStatsFiltered(f)
	if err != nil {
		return nil, err
	}
	resources, err := s.ResourceStatsFiltered(f)
	if err != nil {
		return nil, err
	}
	return &FilteredDatasets{
		DailyStats:    daily,
		ServiceStats:  services,
		ResourceStats: resources,
	}, nil
}

// DailyStatsFiltered narrows the daily table by the filter's date bounds.
// Daily stats carry no service column, so the service field is ignored.
func (s *StatsService) DailyStatsFiltered(f DatasetFilter) ([]models.DailyStat, error) {
	daily, err := s.DailyStats()
	if err != nil {
		return nil, err
	}
	out := make([]models.DailyStat, 0, len(daily))
	for _, st := range daily {
		if f.matchesDate(st.Date) {
			out = append(out, st)
		}
	}
	return out, nil
}

func (s *StatsService) ServiceStatsFiltered(f DatasetFilter) ([]models.ServiceDailyStat, error) {
	services, err := s.ServiceStats()
	if err != nil {
		return nil, err
	}
	out := make([]models.ServiceDailyStat, 0, len(services))
	for _, st := range services {
		if f.matchesDate(st.Date) && f.matchesService(st.Service) {
			out = append(out, st)
		}
	}
	return out, nil
}

func (s *StatsService) ResourceStatsFiltered(f DatasetFilter) ([]models.ResourceStat, error) {
	resources, err := s.ResourceStats()
	if err != nil {
		return nil, err
	}
	out := make([]models.ResourceStat, 0, len(resources))
	for _, st := range resources {
		if f.matchesDate(st.Date) && f.matchesService(st.Service) {
			out = append(out, st)
		}
	}
	return out, nil
}

// MonthlyStatsFiltered narrows the monthly table by the filter's date bounds,
// compared on the "YYYY-MM" prefix. There is no service column.
func (s *StatsService) MonthlyStatsFiltered(f DatasetFilter) ([]models.MonthlyStat, error) {
	monthly, err := s.MonthlyStats()
	if err != nil {
		return nil, err
	}
	out := make([]models.MonthlyStat, 0, len(monthly))
	for _, st := range monthly {
		if f.matchesMonth(st.Month) {
			out = append(out, st)
		}
	}
	return out, nil
}

func (f DatasetFilter) matchesDate(date string) bool {
	d := models.DateOnly(date)
	if f.StartDate != "" && d < f.StartDate {
		return false
	}
	if f.EndDate != "" && d > f.EndDate {
		return false
	}
	return true
}

func (f DatasetFilter) matchesService(service string) bool {
	return f.Service == "" || f.Service == service
}

func (f DatasetFilter) matchesMonth(month string) bool {
	if f.StartDate != "" && month < monthPrefix(f.StartDate) {
		return false
	}
	if f.EndDate != "" && month > monthPrefix(f.EndDate) {
		return false
	}
	return true
}

// monthPrefix truncates a YYYY-MM-DD bound to YYYY-MM.
func monthPrefix(date string) string {
	if len(date) > 7 {
		return date[:7]
	}
	return date
}
