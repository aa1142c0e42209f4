package controllers

import (
	"CluCare/handlers"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Handler *handlers.AuthHandler
}

func NewAuthController(authHandler *handlers.AuthHandler) *AuthController {
	return &AuthController{Handler: authHandler}
}

// RegisterRoutes wires the public authentication endpoints. Login, register
// and password reset never require a token.
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	router.POST("/login", ac.Handler.Login)
	router.POST("/register", ac.Handler.Register)
	router.POST("/password-reset/request", ac.Handler.RequestPasswordReset)
	router.POST("/password-reset/confirm", ac.Handler.ConfirmPasswordReset)
}
