package export

import (
	"bytes"
	"testing"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFormsWorkbook(t *testing.T) {
	cash := "cash"
	forms := []*entity.FormRecord{
		{
			ID:          "f1",
			FyYear:      &entity.FiscalYearRef{FyName: "2023-2024"},
			Month:       &entity.MonthRef{MonthName: "April"},
			Type:        &cash,
			Date:        "05-04-2023",
			ReceivedBy:  []entity.EmployeeRef{{EmpID: "E1", EmpName: "Ravi"}, {EmpID: "E2"}},
			Bills:       []entity.Bill{{BillNo: "B1", Amount: 10}, {BillNo: "B2", Amount: 5.5}},
			TotalAmount: 15.5,
			MergedPDF:   "B1_B2_05-04-2023_1.pdf",
		},
		{ID: "f2"},
	}

	data, err := FormsWorkbook(forms)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetForms)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Form ID", rows[0][0])
	assert.Equal(t, "f1", rows[1][0])
	assert.Equal(t, "2023-2024", rows[1][1])
	assert.Equal(t, "Ravi, E2", rows[1][8])
	assert.Equal(t, "15.5", rows[1][12])
	assert.Equal(t, "f2", rows[2][0])

	bills, err := f.GetRows(SheetBills)
	require.NoError(t, err)
	require.Len(t, bills, 3)
	assert.Equal(t, []string{"f1", "05-04-2023", "B2", "5.5"}, bills[2])
}

func TestFormsWorkbook_Empty(t *testing.T) {
	data, err := FormsWorkbook(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetForms)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
