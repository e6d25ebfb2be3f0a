// Package spreadsheet extracts row mappings and column lists from uploaded
// files. Excel reading goes through excelize; CSV through the standard
// library. All cells surface as strings; typed interpretation is the invoice
// builder's job.
package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"gstflow/internal/domain"
)

// allowedExtensions lists the upload formats the reader understands.
var allowedExtensions = map[string]bool{
	"xlsx": true,
	"xlsm": true,
	"csv":  true,
}

// Allowed reports whether filename has a readable spreadsheet extension.
func Allowed(filename string) bool {
	return allowedExtensions[extensionOf(filename)]
}

// Read parses the file at path into rows and the ordered column list. The
// first line is the header; completely empty data lines are skipped.
func Read(path string) ([]domain.Row, []string, error) {
	switch extensionOf(path) {
	case "xlsx", "xlsm":
		return readExcel(path)
	case "csv":
		return readCSV(path)
	default:
		return nil, nil, domain.ErrUnsupportedFileType
	}
}

func extensionOf(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

func readExcel(path string) ([]domain.Row, []string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("no sheets found in excel file")
	}
	lines, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("reading rows: %w", err)
	}
	return assemble(lines)
}

func readCSV(path string) ([]domain.Row, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening csv file: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	lines, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading csv: %w", err)
	}
	return assemble(lines)
}

// assemble turns raw cell lines into column list plus row mappings. Short
// lines map their missing cells to empty strings.
func assemble(lines [][]string) ([]domain.Row, []string, error) {
	if len(lines) == 0 {
		return nil, nil, fmt.Errorf("file has no header row")
	}

	var columns []string
	for _, h := range lines[0] {
		h = strings.TrimSpace(h)
		if h != "" {
			columns = append(columns, h)
		}
	}
	if len(columns) == 0 {
		return nil, nil, fmt.Errorf("header row has no columns")
	}

	var rows []domain.Row
	for _, line := range lines[1:] {
		row := make(domain.Row, len(columns))
		empty := true
		for i, col := range columns {
			val := ""
			if i < len(line) {
				val = strings.TrimSpace(line[i])
			}
			if val != "" {
				empty = false
			}
			row[col] = val
		}
		if empty {
			continue
		}
		rows = append(rows, row)
	}
	return rows, columns, nil
}
