// Package export turns an ordered email list into downloadable file
// encodings. Both encodings consume the sequence as given — the caller
// filters, export never reorders.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/clippy-app/core/internal/models"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the records in the spreadsheet encoding.
const SheetName = "Emails"

// header is the shared column list for both encodings. The sequence number
// is 1-based over the sequence as given, not any persisted id.
var header = []string{"S.No", "Email", "Date", "Time", "Status", "Timestamp"}

// columnWidths are the declared display widths for the spreadsheet
// encoding, one per header column; the email column is the widest.
var columnWidths = []float64{8, 35, 15, 15, 12, 25}

// Error marks an encoding/emission failure. No partial output is ever
// produced alongside it.
type Error struct {
	Format string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("export to %s failed: %v", e.Format, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// row projects one record into the shared column order.
func row(seq int, rec models.EmailRecord) []string {
	return []string{
		fmt.Sprintf("%d", seq),
		rec.Email,
		rec.DateString(),
		rec.TimeString(),
		string(rec.Status),
		rec.Timestamp.Format(time.RFC3339),
	}
}

// CSV encodes the records with every field double-quoted, fields joined by
// commas, rows joined by newlines, header row first.
func CSV(records []models.EmailRecord) ([]byte, error) {
	var b strings.Builder
	writeCSVRow(&b, header)
	for i, rec := range records {
		b.WriteByte('\n')
		writeCSVRow(&b, row(i+1, rec))
	}
	return []byte(b.String()), nil
}

func writeCSVRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
}

// Spreadsheet encodes the records as an XLSX workbook with one sheet and
// the declared column widths.
func Spreadsheet(records []models.EmailRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, &Error{Format: "xlsx", Err: err}
	}

	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, &Error{Format: "xlsx", Err: err}
		}
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return nil, &Error{Format: "xlsx", Err: err}
		}
	}

	if err := setRow(f, 1, header); err != nil {
		return nil, err
	}
	for i, rec := range records {
		if err := setRow(f, i+2, row(i+1, rec)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, &Error{Format: "xlsx", Err: err}
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, rowNum int, fields []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return &Error{Format: "xlsx", Err: err}
	}
	values := make([]interface{}, len(fields))
	for i, v := range fields {
		values[i] = v
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return &Error{Format: "xlsx", Err: err}
	}
	return nil
}

// Filename builds the deterministic download name {base}_{YYYY-MM-DD}.{ext}.
func Filename(base, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", base, now.Format("2006-01-02"), ext)
}
