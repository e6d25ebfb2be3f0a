// Package csvexport renders validation reports as CSV downloads.
package csvexport

import (
	"encoding/csv"
	"io"

	"gstflow/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Phase",
	"Severity",
	"Value",
	"Message",
	"Suggestion",
}

// Writer wraps csv.Writer for exporting validation findings as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteIssues writes one row per finding under the given phase label.
func (w *Writer) WriteIssues(phase string, issues []domain.ValidationIssue) error {
	for _, issue := range issues {
		row := []string{phase, issue.Type, issue.Value, issue.Message, issue.Suggestion}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteSession writes both phases of a session, customers first.
func (w *Writer) WriteSession(s *domain.ValidationSession) error {
	if err := w.WriteIssues("customer", s.Customers.Issues); err != nil {
		return err
	}
	return w.WriteIssues("item", s.Items.Issues)
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}
