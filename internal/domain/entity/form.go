package entity

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormRecord is a submitted expense voucher form.
// Nested references are denormalized copies of the lookup documents at submission time.
type FormRecord struct {
	ID          string           `json:"_id"`
	FyYear      *FiscalYearRef   `json:"fy_year"`
	Month       *MonthRef        `json:"month"`
	HeadCat     *HeadCategoryRef `json:"head_cat"`
	Type        *string          `json:"type"`
	SubCat      *SubCategoryRef  `json:"sub_cat"`
	Date        string           `json:"date"`
	ReceivedBy  []EmployeeRef    `json:"received_by"`
	Particulars string           `json:"particulars"`
	Departments []DepartmentRef  `json:"departments"`
	Vehicles    []VehicleRef     `json:"vehicles"`
	Bills       []Bill           `json:"bills"`
	Files       []string         `json:"file"`
	MergedPDF   string           `json:"merged_pdf"`
	TotalAmount float64          `json:"TotalAmount"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// Bill is a line item of a form.
type Bill struct {
	BillNo string `json:"bill_no" validate:"required"`
	Amount Amount `json:"amount"`
}

// Amount accepts JSON numbers, numeric strings and booleans.
// Anything else contributes zero.
type Amount float64

// UnmarshalJSON implements json.Unmarshaler
func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = Amount(coerceNumber(data))
	return nil
}

func coerceNumber(data []byte) float64 {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return 0
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return 0
	}

	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	case bool:
		if t {
			f = 1
		}
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// SumBills returns the total of all bill amounts.
func SumBills(bills []Bill) float64 {
	total := decimal.Zero
	for _, b := range bills {
		total = total.Add(decimal.NewFromFloat(float64(b.Amount)))
	}
	return total.InexactFloat64()
}

// BillNumbers returns the bill numbers in order.
func BillNumbers(bills []Bill) []string {
	nos := make([]string, 0, len(bills))
	for _, b := range bills {
		nos = append(nos, b.BillNo)
	}
	return nos
}

// FiscalYearRef is the fiscal year copy stored on a form.
type FiscalYearRef struct {
	ID     string `json:"_id,omitempty"`
	FyName string `json:"fy_name"`
	FyID   *bool  `json:"fy_id,omitempty"`
}

// MonthRef is the month copy stored on a form.
type MonthRef struct {
	ID        string `json:"_id,omitempty"`
	MonthName string `json:"month_name"`
	MonthID   *bool  `json:"month_id,omitempty"`
}

// HeadCategoryRef is the head category copy stored on a form.
type HeadCategoryRef struct {
	ID            string `json:"_id,omitempty"`
	HeadCatID     *int64 `json:"head_cat_id,omitempty"`
	HeadCatName   string `json:"head_cat_name"`
	HeadCatStatus *bool  `json:"head_cat_status,omitempty"`
}

// SubCategoryRef is the sub category copy stored on a form.
type SubCategoryRef struct {
	ID           string `json:"_id,omitempty"`
	SubCatID     *int64 `json:"sub_cat_id,omitempty"`
	HeadCatID    *int64 `json:"head_cat_id,omitempty"`
	SplID        *int64 `json:"spl_id,omitempty"`
	SubCatName   string `json:"sub_cat_name"`
	SubCatStatus *bool  `json:"sub_cat_status,omitempty"`
}

// DepartmentRef is the department copy stored on a form.
type DepartmentRef struct {
	ID            string `json:"_id,omitempty"`
	DeptID        *int64 `json:"dept_id,omitempty"`
	DeptFullName  string `json:"dept_full_name,omitempty"`
	DeptShortName string `json:"dept_short_name,omitempty"`
	SplID         *int64 `json:"spl_id,omitempty"`
}

// VehicleRef is the vehicle copy stored on a form.
type VehicleRef struct {
	ID               string   `json:"_id,omitempty"`
	VehicleID        *float64 `json:"vehicle_id,omitempty"`
	VehicleName      string   `json:"vehicle_name,omitempty"`
	VehicleNumber    string   `json:"vehicle_nmber,omitempty"`
	VehicleRegNumber string   `json:"vehicle_reg_number,omitempty"`
	SplID            *int64   `json:"spl_id,omitempty"`
}

// EmployeeRef is the employee copy stored on a form.
type EmployeeRef struct {
	ID             string `json:"_id,omitempty"`
	EmpID          string `json:"emp_id"`
	EmpName        string `json:"emp_name,omitempty"`
	EmpStatus      string `json:"emp_status,omitempty"`
	EmpDesignation string `json:"emp_designation,omitempty"`
}

// FormFilter selects form records. Nil and empty fields are ignored.
type FormFilter struct {
	FyName              *string
	MonthName           *string
	Date                *string
	DateFrom            *string
	DateTo              *string
	TotalAmount         *float64
	Type                *string
	HeadCatName         *string
	SubCatName          *string
	VehicleID           *float64
	ParticularsContains *string
	BillNos             []string
	EmployeeIDs         []string
}
