package importlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the import log: the outcome of a single import run.
type Entry struct {
	Timestamp time.Time
	File      string
	Accepted  int
	Skipped   int
	Merged    int
	Total     int
}

// Header is the CSV header for import-log.csv.
const Header = "timestamp,file,accepted,skipped,merged,total"

const (
	numFields    = 6
	logDir       = "logs"
	logFile      = "logs/import-log.csv"
	colTimestamp = 0
	colFile      = 1
	colAccepted  = 2
	colSkipped   = 3
	colMerged    = 4
	colTotal     = 5
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colFile] = e.File
	row[colAccepted] = strconv.Itoa(e.Accepted)
	row[colSkipped] = strconv.Itoa(e.Skipped)
	row[colMerged] = strconv.Itoa(e.Merged)
	row[colTotal] = strconv.Itoa(e.Total)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	counts := make([]int, 4)
	for i, col := range []int{colAccepted, colSkipped, colMerged, colTotal} {
		n, err := strconv.Atoi(record[col])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing count %q: %w", record[col], err)
		}
		counts[i] = n
	}

	return Entry{
		Timestamp: ts,
		File:      record[colFile],
		Accepted:  counts[0],
		Skipped:   counts[1],
		Merged:    counts[2],
		Total:     counts[3],
	}, nil
}

// Append writes entries to <dataRoot>/logs/import-log.csv, creating the
// file and header if needed.
func Append(dataRoot string, entries []Entry) error {
	dir := filepath.Join(dataRoot, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(dataRoot, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <dataRoot>/logs/import-log.csv.
// Returns nil if the file does not exist.
func Read(dataRoot string) ([]Entry, error) {
	path := filepath.Join(dataRoot, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading import log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
