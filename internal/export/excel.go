package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pirxey/timetrack-api/internal/format"
	"github.com/pirxey/timetrack-api/internal/models"
	"github.com/pirxey/timetrack-api/internal/report"
)

const sheetName = "Report"

// Workbook builds an Excel report. With DimensionNone it produces one flat
// table; otherwise each group gets a label row with its total followed by the
// group's entries.
func Workbook(entries []*models.TimeEntry, ctx *report.Context, dim report.Dimension, groups []report.Group) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E5E7EB"}},
	})
	if err != nil {
		return nil, err
	}
	groupStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	rowNum := 1
	if err := writeRow(f, rowNum, reportHeaders); err != nil {
		return nil, err
	}
	if err := styleRow(f, rowNum, len(reportHeaders), headerStyle); err != nil {
		return nil, err
	}
	rowNum++

	if dim == report.DimensionNone || len(groups) == 0 {
		for _, e := range entries {
			if err := writeRow(f, rowNum, entryRecord(e, ctx)); err != nil {
				return nil, err
			}
			rowNum++
		}
	} else {
		for _, g := range groups {
			label := fmt.Sprintf("%s (%s)", g.Label, format.Duration(g.TotalMinutes))
			if err := writeRow(f, rowNum, []string{label}); err != nil {
				return nil, err
			}
			if err := styleRow(f, rowNum, 1, groupStyle); err != nil {
				return nil, err
			}
			rowNum++
			for _, e := range g.Entries {
				if err := writeRow(f, rowNum, entryRecord(e, ctx)); err != nil {
					return nil, err
				}
				rowNum++
			}
		}
	}

	if err := f.SetColWidth(sheetName, "A", "K", 18); err != nil {
		return nil, err
	}
	return f, nil
}

func writeRow(f *excelize.File, rowNum int, values []string) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, value); err != nil {
			return err
		}
	}
	return nil
}

func styleRow(f *excelize.File, rowNum, cols, style int) error {
	start, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(cols, rowNum)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheetName, start, end, style)
}
