package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookshare-backend/internal/domains/book"
	"bookshare-backend/internal/domains/user"
	"bookshare-backend/internal/shared/middleware"
	"bookshare-backend/internal/shared/response"
	"bookshare-backend/pkg/logger"
)

type BookHandler struct {
	service book.Service
}

func NewBookHandler(service book.Service) *BookHandler {
	return &BookHandler{service: service}
}

// ListBooks handles GET /books — the full catalog, any status.
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", books)
}

// SearchBooks handles GET /books/search. This endpoint serves the public
// browse view, so only available listings come back.
func (h *BookHandler) SearchBooks(c *gin.Context) {
	var req book.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	books, err := h.service.Search(c.Request.Context(), req.Query, book.Filters{
		Genre:     req.Genre,
		Condition: req.Condition,
		Status:    book.StatusAvailable,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", books)
}

// GetBookDetail handles GET /books/:id
func (h *BookHandler) GetBookDetail(c *gin.Context) {
	b, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", b)
}

// CreateBook handles POST /books (donor only).
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req book.AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", err)
		return
	}

	b, err := h.service.Add(c.Request.Context(), c.GetString(middleware.CtxUserID), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/books/"+b.ID)
	response.Success(c, http.StatusCreated, "Book listed successfully", b)
}

func (h *BookHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", vErrs)
	case errors.Is(err, book.ErrBookNotFound):
		response.NotFound(c, "Book not found")
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, "Donor not found")
	case errors.Is(err, book.ErrInvalidStatus):
		response.BadRequest(c, "Invalid book status")
	case errors.Is(err, book.ErrInvalidStatusTransition):
		response.Conflict(c, "Book cannot move to that status")
	default:
		logger.Error("book handler error", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
