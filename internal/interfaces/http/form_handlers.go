package http

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/application/port"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/application/service"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/domain/entity"
)

// fileField is the multipart field carrying uploads
const fileField = "files"

// PostForm handles POST /postform
func (h *Handlers) PostForm(c *gin.Context) {
	sub, err := readSubmission(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": messageOf(err), "error": err.Error()})
		return
	}

	form, err := h.services.Forms.Create(c.Request.Context(), sub)
	if err != nil {
		h.respondFormError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Form submitted successfully", "Form": form})
}

// ModifyForm handles PUT /modify
func (h *Handlers) ModifyForm(c *gin.Context) {
	sub, err := readSubmission(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": messageOf(err), "error": err.Error()})
		return
	}

	form, err := h.services.Forms.Modify(c.Request.Context(), sub)
	if err != nil {
		h.respondFormError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Form updated successfully", "updatedForm": form})
}

// EraseForm handles DELETE /erase/:id
func (h *Handlers) EraseForm(c *gin.Context) {
	form, err := h.services.Forms.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if statusFor(err) == http.StatusNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": messageOf(err)})
			return
		}
		h.logger.Error("Failed to delete form", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Data and associated files deleted successfully", "data": form})
}

// GetForms handles GET /getforms
func (h *Handlers) GetForms(c *gin.Context) {
	forms, err := h.services.Forms.List(c.Request.Context())
	respondList(h, c, forms, err)
}

// GetForm handles GET /getforms/:id
func (h *Handlers) GetForm(c *gin.Context) {
	form, err := h.services.Forms.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondFormError(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

// respondFormError writes {"message", "error"}: 4xx carry the reason, 5xx say "Server error"
func (h *Handlers) respondFormError(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)

	switch status {
	case http.StatusNotFound:
		c.JSON(status, gin.H{"message": messageOf(err)})
	case http.StatusBadRequest:
		c.JSON(status, gin.H{"message": messageOf(err), "error": err.Error()})
	default:
		h.logger.Error("Form request failed", "path", c.FullPath(), "error", err)
		c.JSON(status, gin.H{"message": "Server error", "error": err.Error()})
	}
}

// readSubmission collects the form fields and file parts of a create or modify request.
// Bodies that are not multipart carry fields only.
func readSubmission(c *gin.Context) (*service.FormSubmission, error) {
	mf, err := c.MultipartForm()
	if err != nil && !errors.Is(err, http.ErrNotMultipart) && !errors.Is(err, http.ErrMissingBoundary) {
		return nil, entity.NewError(entity.KindValidation, "Invalid multipart body", err)
	}

	sub := &service.FormSubmission{
		ID:          postField(c, "_id"),
		FyYear:      postField(c, "fy_year"),
		Month:       postField(c, "month"),
		HeadCat:     postField(c, "head_cat"),
		Type:        postField(c, "type"),
		SubCat:      postField(c, "sub_cat"),
		Date:        postField(c, "date"),
		ReceivedBy:  postField(c, "received_by"),
		Particulars: postField(c, "particulars"),
		Departments: postField(c, "departments"),
		Vehicles:    postField(c, "vehicles"),
		Bills:       postField(c, "bills"),
	}

	if mf != nil {
		for _, fh := range mf.File[fileField] {
			sub.Files = append(sub.Files, uploadedFile(fh))
		}
	}

	return sub, nil
}

func uploadedFile(fh *multipart.FileHeader) port.UploadedFile {
	return port.UploadedFile{
		Filename: fh.Filename,
		Size:     fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// postField returns nil when the field was not sent
func postField(c *gin.Context, name string) *string {
	value, ok := c.GetPostForm(name)
	if !ok {
		return nil
	}
	return &value
}
