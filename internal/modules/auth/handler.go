package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"notifyhub/internal/pkg/response"
	"notifyhub/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid registration payload", fields)
		return
	}

	user, token, err := h.service.Register(c.Request.Context(), req)
	if errors.Is(err, ErrEmailAlreadyExists) {
		response.Error(c, http.StatusConflict, "EMAIL_TAKEN", "Email already registered")
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "REGISTER_FAILED", "Failed to register user")
		return
	}

	response.Success(c, http.StatusCreated, AuthResponse{
		User:  UserPublic{ID: user.ID, Name: user.Name, Email: user.Email},
		Token: token,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req)
	if errors.Is(err, ErrInvalidCredentials) {
		response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to log in")
		return
	}

	response.Success(c, http.StatusOK, AuthResponse{
		User:  UserPublic{ID: user.ID, Name: user.Name, Email: user.Email},
		Token: token,
	})
}
