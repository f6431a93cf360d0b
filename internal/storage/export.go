package storage

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// ExportCSV writes battle records, with a header row, to w.
func ExportCSV(w io.Writer, records []BattleRecord) error {
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("storage: cannot export battles: %w", err)
	}
	return nil
}

// ExportTanksCSV writes tank records, with a header row, to w.
func ExportTanksCSV(w io.Writer, tanks []TankRecord) error {
	if err := gocsv.Marshal(tanks, w); err != nil {
		return fmt.Errorf("storage: cannot export tanks: %w", err)
	}
	return nil
}

// ExportSummaryCSV writes sum as a single CSV row with a header.
func ExportSummaryCSV(w io.Writer, sum Summary) error {
	if err := gocsv.Marshal([]Summary{sum}, w); err != nil {
		return fmt.Errorf("storage: cannot export summary: %w", err)
	}
	return nil
}
