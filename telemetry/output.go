package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"github.com/pthm-cable/drift/config"
)

// OutputManager handles structured run output with CSV logging. Each run
// writes into its own UUID-named directory under the base directory.
type OutputManager struct {
	runID     string
	dir       string
	statsFile *os.File
	perfFile  *os.File

	// Track if headers have been written
	statsHeaderWritten bool
	perfHeaderWritten  bool
}

// RunSummary is the single-row summary written when a run ends.
type RunSummary struct {
	RunID           string  `csv:"run_id"`
	Ticks           int64   `csv:"ticks"`
	WallSeconds     float64 `csv:"wall_seconds"`
	TicksPerSec     float64 `csv:"ticks_per_sec"`
	FinalPopulation int     `csv:"final_population"`
}

// NewOutputManager creates a new output manager and initializes the run directory.
// Returns nil if baseDir is empty (output disabled).
func NewOutputManager(baseDir string) (*OutputManager, error) {
	if baseDir == "" {
		return nil, nil
	}

	runID := uuid.NewString()
	dir := filepath.Join(baseDir, runID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating run directory: %w", err)
	}

	om := &OutputManager{runID: runID, dir: dir}

	// Open stats.csv
	statsPath := filepath.Join(dir, "stats.csv")
	f, err := os.Create(statsPath)
	if err != nil {
		return nil, fmt.Errorf("creating stats.csv: %w", err)
	}
	om.statsFile = f

	// Open perf.csv
	perfPath := filepath.Join(dir, "perf.csv")
	f, err = os.Create(perfPath)
	if err != nil {
		om.statsFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	return om, nil
}

// RunID returns the run's UUID, or "" when output is disabled.
func (om *OutputManager) RunID() string {
	if om == nil {
		return ""
	}
	return om.runID
}

// Dir returns the run directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteStats writes a window stats record to stats.csv.
func (om *OutputManager) WriteStats(stats WindowStats) error {
	if om == nil {
		return nil
	}

	records := []WindowStats{stats}

	if !om.statsHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.statsFile); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
		om.statsHeaderWritten = true
	} else {
		// Subsequent writes skip headers
		if err := gocsv.MarshalWithoutHeaders(records, om.statsFile); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
	}

	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int64) error {
	if om == nil {
		return nil
	}

	csvRecord := stats.ToCSV(windowEnd)
	records := []PerfStatsCSV{csvRecord}

	if !om.perfHeaderWritten {
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
		om.perfHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
	}

	return nil
}

// WriteSummary writes the run summary to summary.csv.
func (om *OutputManager) WriteSummary(s RunSummary) error {
	if om == nil {
		return nil
	}

	path := filepath.Join(om.dir, "summary.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating summary.csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal([]RunSummary{s}, f); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	return nil
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	if om.statsFile != nil {
		if err := om.statsFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.perfFile != nil {
		if err := om.perfFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
