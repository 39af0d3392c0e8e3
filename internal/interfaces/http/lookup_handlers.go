package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/domain/entity"
)

// monthOption is one entry of GET /getmonthoption
type monthOption struct {
	Month entity.MonthRef `json:"month"`
}

// HeadCategories handles GET /gethead_cat
func (h *Handlers) HeadCategories(c *gin.Context) {
	docs, err := h.services.Lookups.HeadCategories(c.Request.Context())
	respondList(h, c, docs, err)
}

// SubCategories handles GET /getsub_cat
func (h *Handlers) SubCategories(c *gin.Context) {
	docs, err := h.services.Lookups.SubCategories(c.Request.Context())
	respondList(h, c, docs, err)
}

// Departments handles GET /getdepartment
func (h *Handlers) Departments(c *gin.Context) {
	docs, err := h.services.Lookups.Departments(c.Request.Context())
	respondList(h, c, docs, err)
}

// Employees handles GET /getemployee
func (h *Handlers) Employees(c *gin.Context) {
	docs, err := h.services.Lookups.Employees(c.Request.Context())
	respondList(h, c, docs, err)
}

// Vehicles handles GET /getvehicle
func (h *Handlers) Vehicles(c *gin.Context) {
	docs, err := h.services.Lookups.Vehicles(c.Request.Context())
	respondList(h, c, docs, err)
}

// Months handles GET /getmonth
func (h *Handlers) Months(c *gin.Context) {
	months, err := h.services.Lookups.Months(c.Request.Context())
	respondList(h, c, months, err)
}

// FiscalYears handles GET /getfy_year
func (h *Handlers) FiscalYears(c *gin.Context) {
	years, err := h.services.Lookups.FiscalYears(c.Request.Context())
	respondList(h, c, years, err)
}

// FiscalYearOptions handles GET /getfyyearoption
func (h *Handlers) FiscalYearOptions(c *gin.Context) {
	options, err := h.services.Lookups.FiscalYearOptions(c.Request.Context())
	respondList(h, c, options, err)
}

// MonthOptions handles GET /getmonthoption
func (h *Handlers) MonthOptions(c *gin.Context) {
	months, err := h.services.Queries.MonthOptions(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	options := make([]monthOption, 0, len(months))
	for _, m := range months {
		options = append(options, monthOption{Month: m})
	}
	c.JSON(http.StatusOK, options)
}

// MonthsFromFiscalYear handles GET /getMonthsFromFyYear/:fy_name
func (h *Handlers) MonthsFromFiscalYear(c *gin.Context) {
	fy, err := h.services.Lookups.ActiveMonths(c.Request.Context(), c.Param("fy_name"))
	if err != nil {
		status := statusFor(err)
		if status == http.StatusNotFound {
			c.JSON(status, gin.H{"message": messageOf(err)})
			return
		}
		h.logger.Error("Failed to load fiscal year months", "fy_name", c.Param("fy_name"), "error", err)
		c.JSON(status, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"fy_name": fy.FyName, "months": fy.Months})
}

// FormFiscalYears handles GET /forms_fy_year
func (h *Handlers) FormFiscalYears(c *gin.Context) {
	years, err := h.services.Queries.FormFiscalYears(c.Request.Context())
	respondList(h, c, years, err)
}
