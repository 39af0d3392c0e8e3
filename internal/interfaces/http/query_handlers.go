package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// FormsByFiscalYearMonth handles GET /fy_year_month/:fy_year/:month
func (h *Handlers) FormsByFiscalYearMonth(c *gin.Context) {
	forms, err := h.services.Queries.ByFiscalYearMonth(c.Request.Context(), c.Param("fy_year"), c.Param("month"))
	respondList(h, c, forms, err)
}

// FormsByDateRange handles GET /date_filter/:from/:to
func (h *Handlers) FormsByDateRange(c *gin.Context) {
	forms, err := h.services.Queries.ByDateRange(c.Request.Context(), c.Param("from"), c.Param("to"))
	respondList(h, c, forms, err)
}

// FormsByBillNos handles GET /getFormsByBillNos?bill_nos=A1,A2
func (h *Handlers) FormsByBillNos(c *gin.Context) {
	forms, err := h.services.Queries.ByBillNos(c.Request.Context(), c.Query("bill_nos"))
	respondList(h, c, forms, err)
}

// FormsByEmployeeIDs handles GET /getFormsByEmployeeIDs?emp_ids=E1,E2
func (h *Handlers) FormsByEmployeeIDs(c *gin.Context) {
	forms, err := h.services.Queries.ByEmployeeIDs(c.Request.Context(), c.Query("emp_ids"))
	respondList(h, c, forms, err)
}

// FormsByAmount handles GET /amount/:given
func (h *Handlers) FormsByAmount(c *gin.Context) {
	forms, err := h.services.Queries.ByAmount(c.Request.Context(), c.Param("given"))
	respondList(h, c, forms, err)
}

// FormsByParticulars handles GET /particulars/:given
func (h *Handlers) FormsByParticulars(c *gin.Context) {
	forms, err := h.services.Queries.ByParticulars(c.Request.Context(), c.Param("given"))
	respondList(h, c, forms, err)
}

// FormsByFiscalYear handles GET /fy_year/:given
func (h *Handlers) FormsByFiscalYear(c *gin.Context) {
	forms, err := h.services.Queries.ByFiscalYear(c.Request.Context(), c.Param("given"))
	respondList(h, c, forms, err)
}

// FormsByMonth handles GET /month/:given
func (h *Handlers) FormsByMonth(c *gin.Context) {
	forms, err := h.services.Queries.ByMonth(c.Request.Context(), c.Param("given"))
	respondList(h, c, forms, err)
}

// FormsByDate handles GET /date/:given
func (h *Handlers) FormsByDate(c *gin.Context) {
	forms, err := h.services.Queries.ByDate(c.Request.Context(), c.Param("given"))
	respondList(h, c, forms, err)
}

// FormsByHeadCategory handles GET /getFormByHeadCatName/:head_cat_name
func (h *Handlers) FormsByHeadCategory(c *gin.Context) {
	forms, err := h.services.Queries.ByHeadCategory(c.Request.Context(), c.Param("head_cat_name"))
	respondList(h, c, forms, err)
}

// FormsByType handles GET /getFormByType/:type
func (h *Handlers) FormsByType(c *gin.Context) {
	forms, err := h.services.Queries.ByType(c.Request.Context(), c.Param("type"))
	respondList(h, c, forms, err)
}

// FormsBySubCategory handles GET /getFormBySubCatName/:sub_cat_name
func (h *Handlers) FormsBySubCategory(c *gin.Context) {
	forms, err := h.services.Queries.BySubCategory(c.Request.Context(), c.Param("sub_cat_name"))
	respondList(h, c, forms, err)
}

// FormsByVehicleID handles GET /getFormByVehicleID/:vehicle_id
func (h *Handlers) FormsByVehicleID(c *gin.Context) {
	forms, err := h.services.Queries.ByVehicleID(c.Request.Context(), c.Param("vehicle_id"))
	respondList(h, c, forms, err)
}

// ExportFiscalYearMonth handles GET /export/fy_year_month/:fy_year/:month
func (h *Handlers) ExportFiscalYearMonth(c *gin.Context) {
	fyName, month := c.Param("fy_year"), c.Param("month")

	data, err := h.services.Queries.ExportWorkbook(c.Request.Context(), fyName, month)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFileName(fyName, month)))
	c.Data(http.StatusOK, xlsxContentType, data)
}

func exportFileName(fyName, month string) string {
	clean := strings.NewReplacer("/", "-", "\\", "-", `"`, "", " ", "_")
	return fmt.Sprintf("forms_%s_%s.xlsx", clean.Replace(fyName), clean.Replace(month))
}
