// Package export renders dashboard lists as xlsx workbooks.
package export

import (
	"fmt"
	"io"
	"time"

	"go-hrdash/internal/employee"
	"go-hrdash/internal/promotionschedule"

	"github.com/xuri/excelize/v2"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	employeesSheet = "Employees"
	schedulesSheet = "Promotion Schedules"
)

var (
	employeeHeader = []any{"ID", "Name", "Employee ID", "Email", "Department", "Position", "Hire Date"}
	scheduleHeader = []any{
		"ID", "Employee", "Current Position", "Target Position",
		"Current Salary", "Target Salary", "Scheduled Date", "Status", "Urgency", "Notes",
	}
)

// Employees writes one row per employee.
func Employees(w io.Writer, rows []employee.EmployeeResponse) error {
	values := make([][]any, 0, len(rows))
	for _, e := range rows {
		values = append(values, []any{
			e.ID, e.Name, e.EmployeeID, e.Email, e.Department, e.Position, dateOnly(e.HireDate),
		})
	}
	return writeSheet(w, employeesSheet, employeeHeader, values)
}

// PromotionSchedules writes one row per schedule; open schedules carry the
// urgency badge relative to now.
func PromotionSchedules(w io.Writer, rows []promotionschedule.PromotionScheduleResponse, now time.Time) error {
	values := make([][]any, 0, len(rows))
	for _, s := range rows {
		urgency := ""
		if scheduled, err := time.Parse(time.RFC3339Nano, s.ScheduledDate); err == nil &&
			!promotionschedule.Status(s.Status).Terminal() {
			urgency = promotionschedule.UrgencyOf(scheduled, now).Label()
		}
		notes := ""
		if s.Notes != nil {
			notes = *s.Notes
		}
		values = append(values, []any{
			s.ID, s.EmployeeName, s.CurrentPosition, s.TargetPosition,
			s.CurrentSalary, s.TargetSalary, dateOnly(s.ScheduledDate), s.Status, urgency, notes,
		})
	}
	return writeSheet(w, schedulesSheet, scheduleHeader, values)
}

func writeSheet(w io.Writer, sheet string, header []any, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", bold); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}

// dateOnly trims an RFC 3339 timestamp to its calendar date.
func dateOnly(v string) string {
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t.UTC().Format("2006-01-02")
	}
	return v
}
