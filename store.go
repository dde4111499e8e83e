package gainers

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/etnz/gainers/date"
)

// Layout of a store, relative to its root.
const (
	PortfoliosDir = "Portfolios"
	ScansDir      = "Daily_Scans"
	SummaryFile   = "summary.json"

	ledgerPrefix = "Portfolio_"
	scanPrefix   = "Scan_"
	csvExt       = ".csv"
)

// Store is the folder holding ledgers, daily scans and the summary.
//
// Files are named after their day: Portfolios/Portfolio_2025-10-03.csv and
// Daily_Scans/Scan_2025-10-03.csv. Files are human readable and meant to be
// versioned.
type Store struct {
	Root string
}

// LedgerPath returns the file of the ledger of day on.
func (s Store) LedgerPath(on date.Date) string {
	return filepath.Join(s.Root, PortfoliosDir, ledgerPrefix+on.String()+csvExt)
}

// ScanPath returns the file of the scan of day on.
func (s Store) ScanPath(on date.Date) string {
	return filepath.Join(s.Root, ScansDir, scanPrefix+on.String()+csvExt)
}

// SummaryPath returns the summary file.
func (s Store) SummaryPath() string { return filepath.Join(s.Root, SummaryFile) }

// Init creates the store folders if needed.
func (s Store) Init() error {
	for _, dir := range []string{PortfoliosDir, ScansDir} {
		if err := os.MkdirAll(filepath.Join(s.Root, dir), 0755); err != nil {
			return fmt.Errorf("cannot create store folder: %w: %w", ErrPersistence, err)
		}
	}
	return nil
}

// dayOf parses the day out of a file name like Portfolio_2025-10-03.csv.
func dayOf(name, prefix string) (date.Date, error) {
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, csvExt) {
		return date.Date{}, fmt.Errorf("%q is not a %s*%s file", name, prefix, csvExt)
	}
	return date.Parse(strings.TrimSuffix(strings.TrimPrefix(name, prefix), csvExt))
}

// LoadBook reads every ledger file.
//
// A ledger file that cannot be read or decoded is skipped with an
// ErrPersistence warning and left untouched on disk: the book refuses to open
// positions on that day and SaveBook never writes it. The returned error is
// only set when the ledger folder itself cannot be read.
func (s Store) LoadBook(invested Money) (*Book, Warnings, error) {
	var warnings Warnings
	dir := filepath.Join(s.Root, PortfoliosDir)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return NewBook(invested), nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read ledger store %q: %w: %w", dir, ErrPersistence, err)
	}

	book := NewBook(invested)
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), ledgerPrefix) {
			continue
		}
		on, err := dayOf(e.Name(), ledgerPrefix)
		if err != nil {
			warnings.Addf("skipping ledger file: %w: %w", ErrPersistence, err)
			continue
		}
		l, err := s.LoadLedger(on)
		if err != nil {
			book.markBroken(on, err)
			warnings.Add(err)
			continue
		}
		if err := book.Add(l); err != nil {
			warnings.Addf("%w: %w", ErrPersistence, err)
		}
	}
	return book, warnings, nil
}

// LedgerDays returns the days having a ledger file, in order.
func (s Store) LedgerDays() ([]date.Date, error) {
	entries, err := os.ReadDir(filepath.Join(s.Root, PortfoliosDir))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read ledger store: %w: %w", ErrPersistence, err)
	}
	var days []date.Date
	for _, e := range entries {
		if on, err := dayOf(e.Name(), ledgerPrefix); err == nil && !e.IsDir() {
			days = append(days, on)
		}
	}
	slices.SortFunc(days, date.Compare)
	return days, nil
}

// LoadLedger reads the ledger of day on.
func (s Store) LoadLedger(on date.Date) (*Ledger, error) {
	path := s.LedgerPath(on)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger %q: %w: %w", path, ErrPersistence, err)
	}
	defer f.Close()
	l, err := DecodeLedger(on, f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode ledger %q: %w: %w", path, ErrPersistence, err)
	}
	return l, nil
}

// SaveLedger writes the ledger file, replacing the previous one atomically.
func (s Store) SaveLedger(l *Ledger) error {
	return writeFileAtomic(s.LedgerPath(l.Date()), func(w io.Writer) error {
		return EncodeLedger(w, l)
	})
}

// SaveBook writes every modified ledger of b. A ledger that fails to be
// written is reported and the others are still written.
func (s Store) SaveBook(b *Book) (saved int, warnings Warnings) {
	for _, l := range b.Modified() {
		if err := s.SaveLedger(l); err != nil {
			warnings.Add(err)
			continue
		}
		b.markSaved(l.Date())
		saved++
	}
	return saved, warnings
}

// LoadScan reads the scan of day on. A missing file is an empty scan.
func (s Store) LoadScan(on date.Date) ([]ScanRecord, error) {
	path := s.ScanPath(on)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open scan %q: %w: %w", path, ErrPersistence, err)
	}
	defer f.Close()
	records, err := DecodeScan(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode scan %q: %w: %w", path, ErrPersistence, err)
	}
	return records, nil
}

// RecordScan adds records to the scan of day on. A ticker scanned again the
// same day replaces its previous row.
func (s Store) RecordScan(on date.Date, records []ScanRecord) error {
	old, err := s.LoadScan(on)
	if err != nil {
		return err
	}
	merged := mergeScan(old, records)
	return writeFileAtomic(s.ScanPath(on), func(w io.Writer) error {
		return EncodeScan(w, merged)
	})
}

// SaveSummary rewrites the summary file.
func (s Store) SaveSummary(sum Summary) error {
	return writeFileAtomic(s.SummaryPath(), func(w io.Writer) error {
		return EncodeSummary(w, sum)
	})
}

// LoadSummary reads the summary file written by the last run.
func (s Store) LoadSummary() (Summary, error) {
	f, err := os.Open(s.SummaryPath())
	if err != nil {
		return Summary{}, fmt.Errorf("cannot open summary: %w: %w", ErrPersistence, err)
	}
	defer f.Close()
	return DecodeSummary(f)
}

// writeFileAtomic writes a temporary file next to path and renames it over
// path, so that a crash never leaves a partially written file behind.
func writeFileAtomic(path string, write func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot write %q: %w: %w", path, ErrPersistence, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("cannot write %q: %w: %w", path, ErrPersistence, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	if err = write(tmp); err != nil {
		return fmt.Errorf("cannot write %q: %w: %w", path, ErrPersistence, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("cannot write %q: %w: %w", path, ErrPersistence, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("cannot write %q: %w: %w", path, ErrPersistence, err)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("cannot write %q: %w: %w", path, ErrPersistence, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("cannot write %q: %w: %w", path, ErrPersistence, err)
	}
	return nil
}
