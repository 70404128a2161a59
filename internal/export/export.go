// Package export writes extracted address lists for drivers and route
// planners.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Format is an output encoding for Write.
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatCSV, FormatJSON:
		return f, nil
	case "":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, csv or json)", s)
}

// Write encodes addresses to w. Text is one address per line, CSV carries
// a stop number column and JSON is an array of strings.
func Write(w io.Writer, format Format, addresses []string) error {
	switch format {
	case FormatText:
		for _, a := range addresses {
			if _, err := fmt.Fprintln(w, a); err != nil {
				return err
			}
		}
		return nil
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"stop", "address"}); err != nil {
			return err
		}
		for i, a := range addresses {
			if err := cw.Write([]string{fmt.Sprint(i + 1), a}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	case FormatJSON:
		if addresses == nil {
			addresses = []string{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(addresses)
	}
	return fmt.Errorf("unknown output format %q", format)
}

// WriteXLSX saves addresses to a spreadsheet at outputPath with a header row.
func WriteXLSX(outputPath string, addresses []string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, h := range []string{"stop", "address"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for i, a := range addresses {
		r := i + 2
		stop, _ := excelize.CoordinatesToCellName(1, r)
		addr, _ := excelize.CoordinatesToCellName(2, r)
		if err := f.SetCellValue(sheet, stop, i+1); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, addr, a); err != nil {
			return err
		}
	}
	_ = f.SetColWidth(sheet, "B", "B", 40)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
