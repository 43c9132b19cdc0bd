package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// LegRecord is one policy's realized outcome on one trial leg.
type LegRecord struct {
	Leg    int
	Policy string
	Action string
	Payout int
}

// SummaryRecord is the aggregate of one comparison run.
type SummaryRecord struct {
	Legs        int
	RandomMean  float64
	OptimalMean float64
	SkillFactor float64
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped output directory for one run under
// dir/name.
func NewWriter(dir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(dir, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{baseDir: baseDir}, nil
}

// BaseDir returns the directory records are written into.
func (w *Writer) BaseDir() string { return w.baseDir }

func (w *Writer) WriteLegRecords(records []LegRecord) error {
	path := filepath.Join(w.baseDir, "leg_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create leg records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"leg", "policy", "action", "payout"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write leg records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Leg),
			record.Policy,
			record.Action,
			strconv.Itoa(record.Payout),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write leg record row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteSummary(record SummaryRecord) error {
	path := filepath.Join(w.baseDir, "summary.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"legs", "random_mean", "optimal_mean", "skill_factor"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}

	row := []string{
		strconv.Itoa(record.Legs),
		strconv.FormatFloat(record.RandomMean, 'f', 4, 64),
		strconv.FormatFloat(record.OptimalMean, 'f', 4, 64),
		strconv.FormatFloat(record.SkillFactor, 'f', 2, 64),
	}
	err = writer.Write(row)
	if err != nil {
		return fmt.Errorf("failed to write summary row: %w", err)
	}

	return nil
}
