package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/devcamper-api/internal/application"
	"github.com/oksasatya/devcamper-api/internal/interface/middleware"
	"github.com/oksasatya/devcamper-api/pkg/response"
)

type ReviewHandler struct {
	Svc *application.ReviewService
}

func NewReviewHandler(svc *application.ReviewService) *ReviewHandler {
	return &ReviewHandler{Svc: svc}
}

type reviewRequest struct {
	Title  string `json:"title" binding:"required,max=100"`
	Text   string `json:"text" binding:"required"`
	Rating int    `json:"rating" binding:"required,rating"`
}

func (r reviewRequest) input() application.ReviewInput {
	return application.ReviewInput{Title: r.Title, Text: r.Text, Rating: r.Rating}
}

// List serves both GET /reviews and GET /bootcamps/:id/reviews.
func (h *ReviewHandler) List(c *gin.Context) {
	out, err := h.Svc.List(c.Request.Context(), c.Param("id"), pageFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, out)
}

func (h *ReviewHandler) Get(c *gin.Context) {
	rv, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, rv)
}

// Create POST /api/v1/bootcamps/:id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	var req reviewRequest
	if !bindJSON(c, &req) {
		return
	}
	rv, err := h.Svc.Create(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), req.input())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, rv)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	var req reviewRequest
	if !bindJSON(c, &req) {
		return
	}
	rv, err := h.Svc.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), req.input())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, rv)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
