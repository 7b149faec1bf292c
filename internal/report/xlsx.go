// Package report writes the fetched leave listing out as a spreadsheet, the
// CLI's replacement for the calendar page.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/worksync/worksync/internal/leave"
)

const sheetName = "Leave Requests"

var headers = []string{"ID", "Employee", "Type", "Start Date", "End Date", "Reason", "Status", "Rejection Reason"}

// WriteXLSX renders the rows to an .xlsx file at path. Rows are written in
// the order given, which is the order the API returned them.
func WriteXLSX(path string, leaves []leave.LeaveRequest) error {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	index, err := file.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create worksheet: %w", err)
	}
	file.SetActiveSheet(index)
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("remove default worksheet: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
	}

	for row, l := range leaves {
		values := []interface{}{
			l.ID,
			l.DisplayName(),
			l.Type,
			l.StartDate.String(),
			l.EndDate.String(),
			l.Reason,
			l.Status,
			l.RejectionReason,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := file.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}
