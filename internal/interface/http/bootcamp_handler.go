package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/devcamper-api/internal/application"
	"github.com/oksasatya/devcamper-api/internal/interface/middleware"
	"github.com/oksasatya/devcamper-api/pkg/apperror"
	"github.com/oksasatya/devcamper-api/pkg/response"
)

type BootcampHandler struct {
	Svc *application.BootcampService
}

func NewBootcampHandler(svc *application.BootcampService) *BootcampHandler {
	return &BootcampHandler{Svc: svc}
}

type bootcampRequest struct {
	Name        string   `json:"name" binding:"required,max=50"`
	Description string   `json:"description" binding:"required,max=500"`
	Website     string   `json:"website" binding:"omitempty,url"`
	Phone       string   `json:"phone" binding:"omitempty,max=20"`
	Email       string   `json:"email" binding:"omitempty,email"`
	Address     string   `json:"address"`
	Careers     []string `json:"careers" binding:"required,min=1"`
}

func (r bootcampRequest) input() application.BootcampInput {
	return application.BootcampInput{
		Name:        r.Name,
		Description: r.Description,
		Website:     r.Website,
		Phone:       r.Phone,
		Email:       r.Email,
		Address:     r.Address,
		Careers:     r.Careers,
	}
}

func (h *BootcampHandler) List(c *gin.Context) {
	out, err := h.Svc.List(c.Request.Context(), pageFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, out)
}

func (h *BootcampHandler) Get(c *gin.Context) {
	b, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// Search GET /api/v1/bootcamps/search?q=
func (h *BootcampHandler) Search(c *gin.Context) {
	out, err := h.Svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, out)
}

func (h *BootcampHandler) Create(c *gin.Context) {
	var req bootcampRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.Svc.Create(c.Request.Context(), middleware.CurrentUser(c), req.input())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

func (h *BootcampHandler) Update(c *gin.Context) {
	var req bootcampRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.Svc.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), req.input())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *BootcampHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// UploadPhoto PUT /api/v1/bootcamps/:id/photo, multipart field "file".
func (h *BootcampHandler) UploadPhoto(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		fail(c, apperror.Validation("Please upload a file", nil))
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, apperror.Internal(err))
		return
	}
	defer func() { _ = f.Close() }()

	name, err := h.Svc.UploadPhoto(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), application.PhotoUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, name)
}
