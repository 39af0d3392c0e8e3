package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/domain/entity"
)

// toggleRequest is the body of the admin toggles, sent as JSON or urlencoded form.
// Pointer fields tell a missing value from an empty one.
type toggleRequest struct {
	FyName    *string `json:"fy_name" form:"fy_name"`
	MonthName *string `json:"month_name" form:"month_name"`
}

type signinRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Signin handles POST /signin.
// Unknown users and wrong passwords both get {"message":"error"} with status 200.
func (h *Handlers) Signin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"message": "error"})
		return
	}

	result, err := h.services.Auth.Signin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidCredentials) {
			c.JSON(http.StatusOK, gin.H{"message": "error"})
			return
		}
		h.logger.Error("Signin failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// SetFiscalYear handles POST /settruefyyear and /setfalsefyyear
func (h *Handlers) SetFiscalYear(active bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := bindToggle(c)
		fy, err := h.services.Admin.SetFiscalYearActive(c.Request.Context(), req.FyName, active)
		h.respondToggle(c, fy, err)
	}
}

// SetFiscalYearMonth handles POST /activateMonth and /lockMonth
func (h *Handlers) SetFiscalYearMonth(active bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := bindToggle(c)
		fy, err := h.services.Admin.SetFiscalYearMonthActive(c.Request.Context(), req.FyName, req.MonthName, active)
		h.respondToggle(c, fy, err)
	}
}

// SetMonth handles POST /setmonthtrue and /setmonthfalse
func (h *Handlers) SetMonth(active bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := bindToggle(c)
		month, err := h.services.Admin.SetMonthActive(c.Request.Context(), req.MonthName, active)
		h.respondToggle(c, month, err)
	}
}

// bindToggle treats an undecodable body as one with no fields,
// so a non-string fy_name gets the same 400 as a missing one.
func bindToggle(c *gin.Context) toggleRequest {
	var req toggleRequest
	if err := c.ShouldBind(&req); err != nil {
		return toggleRequest{}
	}
	return req
}

// respondToggle writes errors as plain text
func (h *Handlers) respondToggle(c *gin.Context, body interface{}, err error) {
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Admin toggle failed", "path", c.FullPath(), "error", err)
		}
		c.String(status, messageOf(err))
		return
	}
	c.JSON(http.StatusOK, body)
}
