package handlers

import (
	"CluCare/middlewares"
	"CluCare/models"
	"CluCare/services"
	"CluCare/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service services.AuthService
}

func NewAuthHandler(service services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req utils.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}
	if err := utils.ValidateLoginRequest(req); err != nil {
		middlewares.HttpError(c, err.Error(), http.StatusBadRequest, err)
		return
	}

	result, err := h.service.Authenticate(c.Request.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, result, http.StatusOK)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}
	if err := h.service.Register(c.Request.Context(), &user); err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"id": user.ID, "email": user.Email, "role": user.Role}, http.StatusCreated)
}

func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		middlewares.HttpError(c, "Email is required", http.StatusBadRequest, err)
		return
	}
	if err := h.service.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	// Same response whether or not the email exists.
	middlewares.RespondJSON(c, gin.H{"message": "If the email is registered, a reset code has been sent"}, http.StatusOK)
}

func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req struct {
		Email       string `json:"email"`
		ResetCode   string `json:"resetCode"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		middlewares.HttpError(c, "Email, reset code and new password are required", http.StatusBadRequest, err)
		return
	}
	if err := h.service.ConfirmPasswordReset(c.Request.Context(), req.Email, req.ResetCode, req.NewPassword); err != nil {
		middlewares.ServiceError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"message": "Password updated"}, http.StatusOK)
}
