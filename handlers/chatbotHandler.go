package handlers

import (
	"CluCare/middlewares"
	"CluCare/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ChatbotHandler struct {
	service services.ChatbotService
}

func NewChatbotHandler(service services.ChatbotService) *ChatbotHandler {
	return &ChatbotHandler{service: service}
}

func (h *ChatbotHandler) Chat(c *gin.Context) {
	var req services.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"response": h.service.Reply(req)}, http.StatusOK)
}
