package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookshare-backend/internal/domains/book"
	"bookshare-backend/internal/domains/request"
	"bookshare-backend/internal/domains/user"
	"bookshare-backend/internal/shared/middleware"
	"bookshare-backend/internal/shared/response"
	"bookshare-backend/pkg/logger"
)

type RequestHandler struct {
	service request.Service
}

func NewRequestHandler(service request.Service) *RequestHandler {
	return &RequestHandler{service: service}
}

// CreateRequest handles POST /requests (collector only).
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var req request.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), c.GetString(middleware.CtxUserID), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/requests/"+created.ID)
	response.Success(c, http.StatusCreated, "Collection request created", created)
}

// ListRequests handles GET /requests. Collectors see their own requests,
// donors see requests on their listings.
func (h *RequestHandler) ListRequests(c *gin.Context) {
	requests, err := h.service.ListFor(
		c.Request.Context(),
		c.GetString(middleware.CtxUserID),
		c.GetString(middleware.CtxUserRole),
	)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", requests)
}

// GetRequestDetail handles GET /requests/:id. Only the collector who
// opened the request or the donor it targets may read it.
func (h *RequestHandler) GetRequestDetail(c *gin.Context) {
	r, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	callerID := c.GetString(middleware.CtxUserID)
	if r.CollectorID != callerID && r.DonorID != callerID {
		response.Forbidden(c, "You cannot view this request")
		return
	}

	response.Success(c, http.StatusOK, "", r)
}

// UpdateRequestStatus handles PATCH /requests/:id/status. Only the donor
// who owns the requested book may decide it.
func (h *RequestHandler) UpdateRequestStatus(c *gin.Context) {
	var req request.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", err)
		return
	}

	current, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	if current.DonorID != c.GetString(middleware.CtxUserID) {
		response.Forbidden(c, "Only the book's donor can update this request")
		return
	}

	updated, err := h.service.UpdateStatus(c.Request.Context(), current.ID, req.Status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Request status updated", updated)
}

func (h *RequestHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", vErrs)
	case errors.Is(err, request.ErrRequestNotFound):
		response.NotFound(c, "Request not found")
	case errors.Is(err, book.ErrBookNotFound):
		response.NotFound(c, "Book not found")
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, "Collector not found")
	case errors.Is(err, request.ErrBookNotAvailable):
		response.Conflict(c, "Book is not available for collection")
	case errors.Is(err, request.ErrInvalidStatus):
		response.BadRequest(c, "Invalid request status")
	case errors.Is(err, request.ErrInvalidStatusTransition):
		response.Conflict(c, "Request cannot move to that status")
	case errors.Is(err, user.ErrInvalidRole):
		response.BadRequest(c, "Unknown role")
	default:
		logger.Error("request handler error", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
