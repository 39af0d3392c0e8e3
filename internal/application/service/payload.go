package service

import (
	"encoding/json"
	"strings"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/application/port"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/domain/entity"
	"github.com/go-playground/validator/v10"
)

// FormSubmission is the raw multipart payload of a create or modify request.
// Nested fields carry JSON text; nil means the field was not sent.
type FormSubmission struct {
	ID          *string
	FyYear      *string
	Month       *string
	HeadCat     *string
	Type        *string
	SubCat      *string
	Date        *string
	ReceivedBy  *string
	Particulars *string
	Departments *string
	Vehicles    *string
	Bills       *string
	Files       []port.UploadedFile
}

var validate = validator.New()

// parseStrict decodes every JSON field of a new submission.
// An absent or malformed field is a validation error.
func parseStrict(sub *FormSubmission) (*entity.FormRecord, error) {
	form := &entity.FormRecord{}

	fields := []struct {
		name string
		raw  *string
		dst  interface{}
	}{
		{"fy_year", sub.FyYear, &form.FyYear},
		{"month", sub.Month, &form.Month},
		{"type", sub.Type, &form.Type},
		{"head_cat", sub.HeadCat, &form.HeadCat},
		{"sub_cat", sub.SubCat, &form.SubCat},
		{"received_by", sub.ReceivedBy, &form.ReceivedBy},
		{"departments", sub.Departments, &form.Departments},
		{"vehicles", sub.Vehicles, &form.Vehicles},
		{"bills", sub.Bills, &form.Bills},
	}

	for _, f := range fields {
		if f.raw == nil {
			return nil, entity.ValidationError("%s is required", f.name)
		}
		if err := json.Unmarshal([]byte(*f.raw), f.dst); err != nil {
			return nil, entity.ValidationError("%s is not valid JSON: %v", f.name, err)
		}
	}

	if sub.Date != nil {
		form.Date = *sub.Date
	}
	if sub.Particulars != nil {
		form.Particulars = *sub.Particulars
	}

	if err := validateBills(form.Bills); err != nil {
		return nil, err
	}

	normalize(form)
	return form, nil
}

// applyLenient overlays a modify submission onto an existing form.
// Nested fields that fail to decode become null, as do absent ones.
// Absent type, date and particulars keep their stored values.
func applyLenient(form *entity.FormRecord, sub *FormSubmission) error {
	form.FyYear = nil
	form.Month = nil
	form.HeadCat = nil
	form.SubCat = nil
	form.ReceivedBy = nil
	form.Departments = nil
	form.Vehicles = nil
	form.Bills = nil

	decodeOrNull(sub.FyYear, &form.FyYear)
	decodeOrNull(sub.Month, &form.Month)
	decodeOrNull(sub.HeadCat, &form.HeadCat)
	decodeOrNull(sub.SubCat, &form.SubCat)
	decodeOrNull(sub.ReceivedBy, &form.ReceivedBy)
	decodeOrNull(sub.Departments, &form.Departments)
	decodeOrNull(sub.Vehicles, &form.Vehicles)
	decodeOrNull(sub.Bills, &form.Bills)

	if sub.Type != nil {
		var t *string
		if err := json.Unmarshal([]byte(*sub.Type), &t); err != nil {
			// plain text type
			raw := *sub.Type
			t = &raw
		}
		form.Type = t
	}
	// sent text fields overwrite, even when empty
	if sub.Date != nil {
		form.Date = *sub.Date
	}
	if sub.Particulars != nil {
		form.Particulars = *sub.Particulars
	}

	if err := validateBills(form.Bills); err != nil {
		return err
	}

	normalize(form)
	return nil
}

func decodeOrNull[T any](raw *string, dst *T) {
	if raw == nil {
		return
	}
	var v T
	if err := json.Unmarshal([]byte(*raw), &v); err != nil {
		return
	}
	*dst = v
}

func validateBills(bills []entity.Bill) error {
	for i, bill := range bills {
		if err := validate.Struct(bill); err != nil {
			return entity.ValidationError("bills[%d]: bill_no is required", i)
		}
		if strings.TrimSpace(bill.BillNo) == "" {
			return entity.ValidationError("bills[%d]: bill_no is required", i)
		}
	}
	return nil
}

// normalize keeps list fields as empty arrays in stored documents and sets the total
func normalize(form *entity.FormRecord) {
	if form.ReceivedBy == nil {
		form.ReceivedBy = []entity.EmployeeRef{}
	}
	if form.Departments == nil {
		form.Departments = []entity.DepartmentRef{}
	}
	if form.Vehicles == nil {
		form.Vehicles = []entity.VehicleRef{}
	}
	if form.Bills == nil {
		form.Bills = []entity.Bill{}
	}
	if form.Files == nil {
		form.Files = []string{}
	}
	form.TotalAmount = entity.SumBills(form.Bills)
}
