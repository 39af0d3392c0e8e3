package entity

// Collection names a lookup collection in the document store.
type Collection string

const (
	CollectionDepartments    Collection = "departments"
	CollectionVehicles       Collection = "vehicles"
	CollectionEmployees      Collection = "employees"
	CollectionHeadCategories Collection = "head_categories"
	CollectionSubCategories  Collection = "sub_categories"
)

// Document is a lookup entry stored as a JSON document.
type Document interface {
	DocumentID() string
	SetDocumentID(id string)
}

// Department lookup entry
type Department struct {
	ID            string `json:"_id" yaml:"-"`
	DeptID        int64  `json:"dept_id" yaml:"dept_id"`
	DeptFullName  string `json:"dept_full_name" yaml:"dept_full_name"`
	DeptShortName string `json:"dept_short_name" yaml:"dept_short_name"`
	SplID         int64  `json:"spl_id" yaml:"spl_id"`
}

// Vehicle lookup entry
type Vehicle struct {
	ID               string  `json:"_id" yaml:"-"`
	VehicleID        float64 `json:"vehicle_id" yaml:"vehicle_id"`
	VehicleName      string  `json:"vehicle_name" yaml:"vehicle_name"`
	VehicleNumber    string  `json:"vehicle_nmber" yaml:"vehicle_nmber"`
	VehicleRegNumber string  `json:"vehicle_reg_number" yaml:"vehicle_reg_number"`
	SplID            int64   `json:"spl_id" yaml:"spl_id"`
}

// Employee lookup entry
type Employee struct {
	ID             string `json:"_id" yaml:"-"`
	EmpID          string `json:"emp_id" yaml:"emp_id"`
	EmpName        string `json:"emp_name" yaml:"emp_name"`
	EmpStatus      string `json:"emp_status" yaml:"emp_status"`
	EmpDesignation string `json:"emp_designation" yaml:"emp_designation"`
}

// HeadCategory lookup entry
type HeadCategory struct {
	ID            string `json:"_id" yaml:"-"`
	HeadCatID     int64  `json:"head_cat_id" yaml:"head_cat_id"`
	HeadCatName   string `json:"head_cat_name" yaml:"head_cat_name"`
	HeadCatStatus bool   `json:"head_cat_status" yaml:"head_cat_status"`
}

// SubCategory lookup entry
type SubCategory struct {
	ID           string `json:"_id" yaml:"-"`
	SubCatID     int64  `json:"sub_cat_id" yaml:"sub_cat_id"`
	HeadCatID    int64  `json:"head_cat_id" yaml:"head_cat_id"`
	SplID        int64  `json:"spl_id" yaml:"spl_id"`
	SubCatName   string `json:"sub_cat_name" yaml:"sub_cat_name"`
	SubCatStatus bool   `json:"sub_cat_status" yaml:"sub_cat_status"`
}

func (d *Department) DocumentID() string        { return d.ID }
func (d *Department) SetDocumentID(id string)   { d.ID = id }
func (v *Vehicle) DocumentID() string           { return v.ID }
func (v *Vehicle) SetDocumentID(id string)      { v.ID = id }
func (e *Employee) DocumentID() string          { return e.ID }
func (e *Employee) SetDocumentID(id string)     { e.ID = id }
func (h *HeadCategory) DocumentID() string      { return h.ID }
func (h *HeadCategory) SetDocumentID(id string) { h.ID = id }
func (s *SubCategory) DocumentID() string       { return s.ID }
func (s *SubCategory) SetDocumentID(id string)  { s.ID = id }
