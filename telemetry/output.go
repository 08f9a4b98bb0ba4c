package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/stipple/config"
)

// csvTable is an append-only CSV file that writes its header once.
type csvTable struct {
	f             *os.File
	headerWritten bool
}

func openTable(dir, name string) (*csvTable, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvTable{f: f}, nil
}

func writeRow[T any](t *csvTable, row T) error {
	records := []T{row}
	if !t.headerWritten {
		if err := gocsv.Marshal(records, t.f); err != nil {
			return err
		}
		t.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, t.f)
}

// OutputManager writes run output: field.csv, perf.csv, bookmarks.csv and a
// config snapshot. A nil *OutputManager is valid and discards everything.
type OutputManager struct {
	dir       string
	field     *csvTable
	perf      *csvTable
	bookmarks *csvTable
}

// NewOutputManager creates dir and opens the CSV files in it.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	field, err := openTable(dir, "field.csv")
	if err != nil {
		return nil, err
	}
	perf, err := openTable(dir, "perf.csv")
	if err != nil {
		field.f.Close()
		return nil, err
	}
	bookmarks, err := openTable(dir, "bookmarks.csv")
	if err != nil {
		field.f.Close()
		perf.f.Close()
		return nil, err
	}
	return &OutputManager{dir: dir, field: field, perf: perf, bookmarks: bookmarks}, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteField appends a stats window to field.csv.
func (om *OutputManager) WriteField(stats FieldStats) error {
	if om == nil {
		return nil
	}
	if err := writeRow(om.field, stats); err != nil {
		return fmt.Errorf("writing field stats: %w", err)
	}
	return nil
}

// WritePerf appends a performance window to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int64) error {
	if om == nil {
		return nil
	}
	if err := writeRow(om.perf, stats.ToCSV(windowEnd)); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteBookmark appends a bookmark to bookmarks.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	if err := writeRow(om.bookmarks, b); err != nil {
		return fmt.Errorf("writing bookmark: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes all output files, returning the first error.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	for _, t := range []*csvTable{om.field, om.perf, om.bookmarks} {
		if err := t.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
