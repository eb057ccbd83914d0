package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookshare-backend/internal/domains/user"
	"bookshare-backend/internal/shared/middleware"
	"bookshare-backend/internal/shared/response"
	"bookshare-backend/pkg/logger"
)

// UserHandler is the thin HTTP layer over the identity service.
type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Register handles POST /auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	dto, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/users/"+dto.ID)
	response.Success(c, http.StatusCreated, "User registered successfully", dto)
}

// Login handles POST /auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	auth, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", auth)
}

// OAuthSignIn handles POST /auth/oauth/:provider
func (h *UserHandler) OAuthSignIn(c *gin.Context) {
	var req user.ProviderSignInRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	auth, err := h.service.SignInWithProvider(c.Request.Context(), c.Param("provider"), req.Role)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Sign-in successful", auth)
}

// Logout handles POST /auth/logout
func (h *UserHandler) Logout(c *gin.Context) {
	token := c.GetString(middleware.CtxToken)
	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Logged out", nil)
}

// ========================================
// PROFILE ENDPOINTS
// ========================================

// Me handles GET /users/me
func (h *UserHandler) Me(c *gin.Context) {
	dto, err := h.service.GetProfile(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", dto)
}

// ========================================
// HELPERS
// ========================================

// bindAndValidate parses the JSON body and runs the DTO's own validation.
// Responds on failure and reports whether the handler may continue.
func (h *UserHandler) bindAndValidate(c *gin.Context, req interface{ Validate() error }) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return false
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", err)
		return false
	}
	return true
}

// handleError maps domain errors onto HTTP status codes.
func (h *UserHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", vErrs)
	case errors.Is(err, user.ErrEmailAlreadyExists):
		response.Conflict(c, "An account with this email already exists")
	case errors.Is(err, user.ErrInvalidCredentials):
		response.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, user.ErrUnknownProvider):
		response.Unauthorized(c, "Unknown identity provider")
	case errors.Is(err, user.ErrInvalidRole):
		response.BadRequest(c, "Role must be donor or collector")
	case errors.Is(err, user.ErrSessionExpired), errors.Is(err, user.ErrSessionNotFound):
		response.Unauthorized(c, "Session expired")
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, "User not found")
	default:
		logger.Error("user handler error", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
