package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skyreserve/airline-backend/internal/models"
	"github.com/skyreserve/airline-backend/internal/services"
)

// ChatHandler handles the free-text command endpoint
type ChatHandler struct {
	chat *services.ChatService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chat *services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Handle classifies the message and returns the aggregated task results
func (h *ChatHandler) Handle(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.chat.Handle(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
