package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/devcamper-api/internal/application"
	"github.com/oksasatya/devcamper-api/internal/interface/middleware"
	"github.com/oksasatya/devcamper-api/pkg/response"
)

type CourseHandler struct {
	Svc *application.CourseService
}

func NewCourseHandler(svc *application.CourseService) *CourseHandler {
	return &CourseHandler{Svc: svc}
}

type courseRequest struct {
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description" binding:"required"`
	Weeks        int     `json:"weeks" binding:"required,min=1"`
	Tuition      float64 `json:"tuition" binding:"required,gte=0"`
	MinimumSkill string  `json:"minimumSkill" binding:"required,skill"`
}

func (r courseRequest) input() application.CourseInput {
	return application.CourseInput{
		Title:        r.Title,
		Description:  r.Description,
		Weeks:        r.Weeks,
		Tuition:      r.Tuition,
		MinimumSkill: r.MinimumSkill,
	}
}

// List serves both GET /courses and GET /bootcamps/:id/courses.
func (h *CourseHandler) List(c *gin.Context) {
	out, err := h.Svc.List(c.Request.Context(), c.Param("id"), pageFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, out)
}

func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, course)
}

// Create POST /api/v1/bootcamps/:id/courses
func (h *CourseHandler) Create(c *gin.Context) {
	var req courseRequest
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.Svc.Create(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), req.input())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, course)
}

func (h *CourseHandler) Update(c *gin.Context) {
	var req courseRequest
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.Svc.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), req.input())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, course)
}

func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
