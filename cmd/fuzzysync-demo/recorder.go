package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"
)

// recorder writes the demonstration CSV format
// "winner,a_start,b_start,a_end,b_end\n", one row per iteration of the
// scenario under observation. The core never touches this format - it is
// purely a property of the demo CLI.
type recorder struct {
	f *os.File
	w *csv.Writer
}

// defaultCSVPath generates a collision-free output filename when the
// caller did not pass -f, so repeated runs of the demo never clobber each
// other's results.
func defaultCSVPath() string {
	return fmt.Sprintf("fuzzysync-%s.csv", uuid.NewString())
}

// newRecorder opens path for writing (creating it, truncating if it
// already exists) and writes the CSV header row.
func newRecorder(path string) (*recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"winner", "a_start", "b_start", "a_end", "b_end"}); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing header: %w", err)
	}

	return &recorder{f: f, w: w}, nil
}

// writeRow records one iteration's outcome. winner is "A", "B", or "" for
// scenarios that do not race a winner variable; the four timestamps are
// nanosecond counts relative to the run's own clock epoch.
func (r *recorder) writeRow(winner string, aStart, bStart, aEnd, bEnd int64) error {
	return r.w.Write([]string{
		winner,
		strconv.FormatInt(aStart, 10),
		strconv.FormatInt(bStart, 10),
		strconv.FormatInt(aEnd, 10),
		strconv.FormatInt(bEnd, 10),
	})
}

// close flushes buffered rows and closes the underlying file.
func (r *recorder) close() error {
	r.w.Flush()
	if err := r.w.Error(); err != nil {
		r.f.Close()
		return err
	}
	return r.f.Close()
}
