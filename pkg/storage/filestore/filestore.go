package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dorushugo/pitie-salpetriere-analysis-sub001/pkg/csvtable"
)

// Fixed file names produced by the analytics pipeline.
const (
	DailyStatsFile          = "daily_stats.csv"
	ServiceStatsFile        = "service_daily_stats.csv"
	ResourcesFile           = "resources.csv"
	MonthlyStatsFile        = "monthly_stats.csv"
	ArimaPredictionsFile    = "predictions_arima.json"
	RFPredictionsFile       = "predictions_rf.json"
	EnsemblePredictionsFile = "predictions_ensemble.json"
	SeasonalityFile         = "seasonality_analysis.json"
)

var ErrInvalidJSON = errors.New("invalid JSON document")

type csvEntry struct {
	modTime time.Time
	records []csvtable.Record
}

type jsonEntry struct {
	modTime time.Time
	raw     json.RawMessage
}

// Store reads the dashboard datasets from a fixed directory. Parsed files are
// cached against their modification time; a change on disk invalidates the
// entry and, when Watch is running, is pushed to the Events channel.
type Store struct {
	dir string

	mu        sync.RWMutex
	csvCache  map[string]csvEntry
	jsonCache map[string]jsonEntry

	watcher *fsnotify.Watcher
	events  chan string
	done    chan struct{}
}

func New(dir string) *Store {
	return &Store{
		dir:       dir,
		csvCache:  make(map[string]csvEntry),
		jsonCache: make(map[string]jsonEntry),
		events:    make(chan string, 16),
		done:      make(chan struct{}),
	}
}

func (s *Store) Dir() string {
	return s.dir
}

// ReadCSV returns the parsed records of a CSV dataset. Callers must treat the
// returned slice as read-only.
func (s *Store) ReadCSV(name string) ([]csvtable.Record, error) {
	path := filepath.Join(s.dir, name)
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", name, err)
	}

	s.mu.RLock()
	entry, ok := s.csvCache[name]
	s.mu.RUnlock()
	if ok && entry.modTime.Equal(info.ModTime()) {
		return entry.records, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	records, warnings := csvtable.Parse(string(raw))
	for _, w := range warnings {
		log.Printf("filestore: %s: %s", name, w)
	}

	s.mu.Lock()
	s.csvCache[name] = csvEntry{modTime: info.ModTime(), records: records}
	s.mu.Unlock()
	return records, nil
}

// ReadJSON returns the raw bytes of a JSON dataset after validating that they
// form a single well-formed document. The content is passed through untouched.
func (s *Store) ReadJSON(name string) (json.RawMessage, error) {
	path := filepath.Join(s.dir, name)
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", name, err)
	}

	s.mu.RLock()
	entry, ok := s.jsonCache[name]
	s.mu.RUnlock()
	if ok && entry.modTime.Equal(info.ModTime()) {
		return entry.raw, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%s: %w", name, ErrInvalidJSON)
	}

	s.mu.Lock()
	s.jsonCache[name] = jsonEntry{modTime: info.ModTime(), raw: raw}
	s.mu.Unlock()
	return raw, nil
}

// Invalidate drops the cache entry for a single file.
func (s *Store) Invalidate(name string) {
	s.mu.Lock()
	delete(s.csvCache, name)
	delete(s.jsonCache, name)
	s.mu.Unlock()
}

// Flush drops every cache entry. The next read re-parses from disk.
func (s *Store) Flush() {
	s.mu.Lock()
	s.csvCache = make(map[string]csvEntry)
	s.jsonCache = make(map[string]jsonEntry)
	s.mu.Unlock()
}

// Watch starts an fsnotify watcher on the data directory. Changed dataset
// files are invalidated and their names pushed to Events.
func (s *Store) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", s.dir, err)
	}
	s.watcher = watcher

	go func() {
		for {
			select {
			case <-s.done:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Op.Has(fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename) {
					continue
				}
				name := filepath.Base(event.Name)
				if !isDatasetFile(name) {
					continue
				}
				s.Invalidate(name)
				select {
				case s.events <- name:
				default:
					// subscriber lagging, drop rather than block the watcher
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("filestore: watcher error: %v", err)
			}
		}
	}()
	return nil
}

// Events delivers the names of dataset files that changed on disk.
func (s *Store) Events() <-chan string {
	return s.events
}

func (s *Store) Close() error {
	close(s.done)
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

func isDatasetFile(name string) bool {
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".json")
}
