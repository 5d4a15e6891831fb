// Package export writes the detailed dashboard tables as an XLSX workbook.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/gamecharts/leaderboard-dashboard/internal/models"
)

const (
	SheetAll      = "All"
	SheetCategory = "Category"
)

// Workbook builds a workbook with the full table on SheetAll and, when a
// category is selected, its top rows on SheetCategory.
func Workbook(view *models.DashboardView) (*excelize.File, error) {
	if view == nil || view.Detailed == nil || view.Detailed.All == nil {
		return nil, fmt.Errorf("no detailed view to export")
	}

	x := excelize.NewFile()
	if err := x.SetSheetName("Sheet1", SheetAll); err != nil {
		x.Close()
		return nil, err
	}
	header, err := x.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		x.Close()
		return nil, err
	}

	if err := writeTable(x, SheetAll, view.Detailed.All, header); err != nil {
		x.Close()
		return nil, err
	}
	if view.Detailed.Category != nil {
		if _, err := x.NewSheet(SheetCategory); err != nil {
			x.Close()
			return nil, err
		}
		if err := writeTable(x, SheetCategory, view.Detailed.Category, header); err != nil {
			x.Close()
			return nil, err
		}
	}
	x.SetActiveSheet(0)
	return x, nil
}

// Write streams the workbook for view to w.
func Write(w io.Writer, view *models.DashboardView) error {
	x, err := Workbook(view)
	if err != nil {
		return err
	}
	defer x.Close()
	return x.Write(w)
}

func writeTable(x *excelize.File, sheet string, table *models.LeaderboardTable, headerStyle int) error {
	for c, name := range table.Columns {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := x.SetCellStr(sheet, cell, name); err != nil {
			return err
		}
	}
	if len(table.Columns) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(table.Columns), 1)
		if err := x.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return err
		}
	}

	for r, row := range table.Rows {
		for c, name := range table.Columns {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := x.SetCellValue(sheet, cell, cellValue(row, name)); err != nil {
				return err
			}
		}
	}
	return nil
}

// cellValue keeps ranks and numeric ratings as numbers so they sort in Excel.
func cellValue(row models.LeaderboardRow, column string) interface{} {
	switch column {
	case models.ColumnPosition:
		if !row.Ranked() {
			return ""
		}
		return row.Position
	case models.ColumnRating:
		if row.Rating.Numeric {
			return row.Rating.Value
		}
	}
	return row.Value(column)
}
