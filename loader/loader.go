// Package loader reads institution CSV exports and normalizes them into
// ledger.Transaction rows. Each supported source has its own column layout;
// loaders map those columns onto the common schema and stamp provenance.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/expenses/ledger"
)

// ErrNoFiles is returned by a loader whose source folder is missing or holds
// no CSV files. LoadAll treats it as a skippable warning, not a failure.
var ErrNoFiles = errors.New("no CSV files found")

// Loader reads one source's export files.
type Loader interface {
	Name() string
	Load() ([]ledger.Transaction, error)
}

// LoadAll runs every source loader against dataFolder and combines the
// results, sorted by date (stable, so same-day rows keep load order).
// A source with no files is skipped with a warning; malformed rows in a
// present file abort the whole load. It is an error for every source to
// be missing.
func LoadAll(dataFolder string, appleCardOwners []string, logger *slog.Logger) ([]ledger.Transaction, error) {
	if logger == nil {
		logger = slog.Default()
	}

	loaders := []Loader{
		NewChaseChecking(filepath.Join(dataFolder, "chase_checking")),
		NewChaseCard(filepath.Join(dataFolder, "chase_card")),
	}
	for _, owner := range appleCardOwners {
		folder := filepath.Join(dataFolder, strings.ToLower(owner)+"_apple_card")
		loaders = append(loaders, NewAppleCard(folder, owner))
	}

	var all []ledger.Transaction
	for _, l := range loaders {
		rows, err := l.Load()
		if err != nil {
			if errors.Is(err, ErrNoFiles) {
				logger.Warn("skipping source", "source", l.Name(), "reason", err)
				continue
			}
			return nil, fmt.Errorf("load %s: %w", l.Name(), err)
		}
		logger.Info("loaded records", "source", l.Name(), "count", len(rows))
		all = append(all, rows...)
	}

	if len(all) == 0 {
		return nil, errors.New("no data loaded from any source")
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].Date.Before(all[j].Date) })
	return all, nil
}

// rawRow is one CSV record indexed by header name, with its file of origin.
type rawRow struct {
	fields map[string]string
	file   string
}

func (r rawRow) get(column string) string {
	return strings.TrimSpace(r.fields[column])
}

// readCSVFolder reads every *.csv file in folder, in name order, keyed by
// the header row of each file. Short records leave trailing columns empty.
func readCSVFolder(folder string) ([]rawRow, error) {
	files, err := filepath.Glob(filepath.Join(folder, "*.csv"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFiles, folder)
	}
	sort.Strings(files)

	var rows []rawRow
	for _, file := range files {
		fileRows, err := readCSVFile(file)
		if err != nil {
			return nil, err
		}
		rows = append(rows, fileRows...)
	}
	return rows, nil
}

func readCSVFile(path string) ([]rawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: read header: %w", filepath.Base(path), err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []rawRow
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		fields := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(rec) {
				fields[h] = rec[i]
			}
		}
		rows = append(rows, rawRow{fields: fields, file: filepath.Base(path)})
	}
	return rows, nil
}

var dateLayouts = []string{"01/02/2006", "2006-01-02", "01/02/06"}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable amount %q", s)
	}
	return v, nil
}
