// Package workbook reads .xlsx exports into raw sheet rows for the pipeline.
package workbook

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andresuchdata/lgurt/backend-go/internal/domain"
	"github.com/andresuchdata/lgurt/backend-go/internal/pipeline"
	"github.com/xuri/excelize/v2"
)

// Workbook holds every sheet of an xlsx file in memory. Cells are raw
// (unformatted) strings.
type Workbook struct {
	sheets map[string][]domain.Row
	names  []string
}

// Open reads the xlsx file at path.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx file %s: %w: %w", path, pipeline.ErrUnreadableWorkbook, err)
	}
	defer f.Close()

	return load(f)
}

// OpenReader reads an xlsx document from r.
func OpenReader(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx stream: %w: %w", pipeline.ErrUnreadableWorkbook, err)
	}
	defer f.Close()

	return load(f)
}

// OpenBytes reads an xlsx document held in memory.
func OpenBytes(data []byte) (*Workbook, error) {
	return OpenReader(bytes.NewReader(data))
}

func load(f *excelize.File) (*Workbook, error) {
	wb := &Workbook{
		sheets: make(map[string][]domain.Row),
		names:  f.GetSheetList(),
	}

	for _, sheet := range wb.names {
		rows, err := readSheet(f, sheet)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", pipeline.ErrUnreadableWorkbook, err)
		}
		wb.sheets[sheet] = rows
	}
	return wb, nil
}

func readSheet(f *excelize.File, sheet string) ([]domain.Row, error) {
	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %s: %w", sheet, err)
	}
	defer rows.Close()

	out := make([]domain.Row, 0)
	for rows.Next() {
		record, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read row from sheet %s: %w", sheet, err)
		}
		row := make(domain.Row, len(record))
		for i, v := range record {
			row[i] = v
		}
		out = append(out, row)
	}

	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("error iterating rows in sheet %s: %w", sheet, err)
	}
	return out, nil
}

// Rows returns the rows of the named sheet.
func (w *Workbook) Rows(name string) ([]domain.Row, bool) {
	rows, ok := w.sheets[name]
	return rows, ok
}

// SheetNames lists the sheets in workbook order.
func (w *Workbook) SheetNames() []string {
	out := make([]string, len(w.names))
	copy(out, w.names)
	return out
}

var _ pipeline.SheetSource = (*Workbook)(nil)
