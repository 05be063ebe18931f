package record

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Records"

// xlsxWriter accumulates rows in an excelize workbook and saves it on
// Close.
type xlsxWriter struct {
	path string
	file *excelize.File
	row  int
}

func newXLSXWriter(path string) (*xlsxWriter, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}
	return &xlsxWriter{path: path, file: f, row: 1}, nil
}

func (x *xlsxWriter) WriteHeader(header []string) error {
	return x.WriteRow(header)
}

func (x *xlsxWriter) WriteRow(row []string) error {
	for i, v := range row {
		cell, err := excelize.CoordinatesToCellName(i+1, x.row)
		if err != nil {
			return fmt.Errorf("address cell: %w", err)
		}
		if err := x.file.SetCellValue(xlsxSheet, cell, v); err != nil {
			return fmt.Errorf("write cell %s: %w", cell, err)
		}
	}
	x.row++
	return nil
}

func (x *xlsxWriter) Close() error {
	defer x.file.Close()
	if err := x.file.SaveAs(x.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
