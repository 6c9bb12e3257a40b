package export

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/fioriscope/fioriscope/pkg/constants"
	"github.com/fioriscope/fioriscope/pkg/errors"
)

// ContentType is the MIME type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// defaultSheet is the sheet every new excelize file starts with.
const defaultSheet = "Sheet1"

// Workbook renders the report as a single-sheet workbook. Callers must Close it.
func (r *Report) Workbook() (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := constants.SheetName

	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		_ = f.Close()
		return nil, errors.WrapResource("create", "worksheet", sheet, err)
	}

	if err := fill(f, sheet, r.AllRows()); err != nil {
		_ = f.Close()
		return nil, errors.WrapResource("write", "worksheet", sheet, err)
	}
	return f, nil
}

func fill(f *excelize.File, sheet string, rows []Row) error {
	header := make([]any, 0, len(Columns))
	for _, h := range Headers() {
		header = append(header, h)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		vals := row.Values()
		cells := make([]any, len(vals))
		for j, v := range vals {
			cells[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return err
		}
	}

	for i, col := range Columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, col.Width); err != nil {
			return err
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(Columns), len(rows)+1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

// Write streams the workbook to w.
func (r *Report) Write(w io.Writer) error {
	f, err := r.Workbook()
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteTo(w); err != nil {
		return errors.WrapIO("write", r.FileName(), err)
	}
	return nil
}

// Bytes returns the encoded workbook.
func (r *Report) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes the workbook into dir under its standard file name and
// returns the full path. The directory is created if needed.
func (r *Report) WriteFile(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return "", errors.WrapIO("create", dir, err)
	}

	data, err := r.Bytes()
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, r.FileName())
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return "", errors.WrapIO("write", path, err)
	}
	return path, nil
}
