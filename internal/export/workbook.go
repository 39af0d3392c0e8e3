// Package export renders form records as an XLSX workbook.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

const (
	SheetForms = "Forms"
	SheetBills = "Bills"
)

var formHeaders = []string{
	"Form ID", "Fiscal Year", "Month", "Date", "Type", "Head Category", "Sub Category",
	"Particulars", "Received By", "Departments", "Vehicles", "Bill Count", "Total Amount", "Merged PDF",
}

var billHeaders = []string{"Form ID", "Date", "Bill No", "Amount"}

// FormsWorkbook writes one row per form and one row per bill
func FormsWorkbook(forms []*entity.FormRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with Sheet1
	if err := f.SetSheetName("Sheet1", SheetForms); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetBills); err != nil {
		return nil, fmt.Errorf("create bills sheet: %w", err)
	}

	if err := writeHeader(f, SheetForms, formHeaders); err != nil {
		return nil, err
	}
	if err := writeHeader(f, SheetBills, billHeaders); err != nil {
		return nil, err
	}

	billRow := 2
	for i, form := range forms {
		row := i + 2
		values := []interface{}{
			form.ID,
			fiscalYearName(form),
			monthName(form),
			form.Date,
			deref(form.Type),
			headCategoryName(form),
			subCategoryName(form),
			form.Particulars,
			employeeNames(form.ReceivedBy),
			departmentNames(form.Departments),
			vehicleNames(form.Vehicles),
			len(form.Bills),
			form.TotalAmount,
			form.MergedPDF,
		}
		if err := writeRow(f, SheetForms, row, values); err != nil {
			return nil, err
		}

		for _, bill := range form.Bills {
			if err := writeRow(f, SheetBills, billRow, []interface{}{form.ID, form.Date, bill.BillNo, float64(bill.Amount)}); err != nil {
				return nil, err
			}
			billRow++
		}
	}

	_ = f.SetColWidth(SheetForms, "A", "A", 38)
	_ = f.SetColWidth(SheetForms, "B", "G", 16)
	_ = f.SetColWidth(SheetForms, "H", "K", 30)
	_ = f.SetColWidth(SheetForms, "N", "N", 36)
	_ = f.SetColWidth(SheetBills, "A", "A", 38)

	index, _ := f.GetSheetIndex(SheetForms)
	f.SetActiveSheet(index)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File, sheet string, headers []string) error {
	values := make([]interface{}, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	if err := writeRow(f, sheet, 1, values); err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	return f.SetCellStyle(sheet, "A1", last, style)
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func fiscalYearName(form *entity.FormRecord) string {
	if form.FyYear == nil {
		return ""
	}
	return form.FyYear.FyName
}

func monthName(form *entity.FormRecord) string {
	if form.Month == nil {
		return ""
	}
	return form.Month.MonthName
}

func headCategoryName(form *entity.FormRecord) string {
	if form.HeadCat == nil {
		return ""
	}
	return form.HeadCat.HeadCatName
}

func subCategoryName(form *entity.FormRecord) string {
	if form.SubCat == nil {
		return ""
	}
	return form.SubCat.SubCatName
}

func employeeNames(emps []entity.EmployeeRef) string {
	names := make([]string, 0, len(emps))
	for _, e := range emps {
		if e.EmpName != "" {
			names = append(names, e.EmpName)
		} else {
			names = append(names, e.EmpID)
		}
	}
	return strings.Join(names, ", ")
}

func departmentNames(depts []entity.DepartmentRef) string {
	names := make([]string, 0, len(depts))
	for _, d := range depts {
		if d.DeptShortName != "" {
			names = append(names, d.DeptShortName)
		} else {
			names = append(names, d.DeptFullName)
		}
	}
	return strings.Join(names, ", ")
}

func vehicleNames(vehicles []entity.VehicleRef) string {
	names := make([]string, 0, len(vehicles))
	for _, v := range vehicles {
		name := v.VehicleName
		if v.VehicleRegNumber != "" {
			name = strings.TrimSpace(name + " " + v.VehicleRegNumber)
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}
