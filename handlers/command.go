package handlers

import (
	"net/http"

	"schedulit/models"
	"schedulit/services/assistant"
	"schedulit/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxMessageLength = 500

// CommandHandler exposes the assistant over /api/message.
type CommandHandler struct {
	Assistant assistant.Service
}

func NewCommandHandler(svc assistant.Service) *CommandHandler {
	return &CommandHandler{Assistant: svc}
}

// HandleMessage parses and executes one natural-language calendar command.
func (h *CommandHandler) HandleMessage(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString("userID")

	var req models.CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Message field is required", "")
		return
	}

	if len(req.Message) > maxMessageLength {
		utils.JSONError(c, http.StatusBadRequest,
			"Your message is too long. Please keep commands under 500 characters.", "")
		return
	}

	result, err := h.Assistant.HandleMessage(c.Request.Context(), userID, req.Message)
	if err != nil {
		logger.Error("command handling failed", zap.String("userID", userID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError,
			"An error occurred processing your message", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": result.Message,
		"result":  result,
	})
}
