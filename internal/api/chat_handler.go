package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"runbuddy/coach-app/internal/llm"
	"runbuddy/coach-app/internal/repository"
	"runbuddy/coach-app/internal/service"
)

// ChatHandler serves the coach conversation endpoints.
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type ChatRequest struct {
	// Full conversation so far, oldest first. The client keeps the history;
	// the server is stateless about conversations.
	Messages []llm.Message `json:"messages" binding:"required,min=1"`
}

type ChatResponse struct {
	Reply llm.Message `json:"reply"`
}

// Chat godoc
// @Summary Get the coach's next reply for a conversation
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param chat body ChatRequest true "Conversation history"
// @Success 200 {object} ChatResponse
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 409 {object} gin.H "Onboarding not completed"
// @Router /chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	reply, err := h.chatService.Reply(c.Request.Context(), userID, req.Messages)
	if err != nil {
		if errors.Is(err, service.ErrProfileRequired) {
			abortWithError(c, http.StatusConflict, "Complete onboarding before chatting with your coach")
		} else if errors.Is(err, repository.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "User not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load your coach")
		}
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Reply: reply})
}

// Welcome godoc
// @Summary Seed messages for a fresh coach conversation
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Success 200 {array} llm.Message
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 409 {object} gin.H "Onboarding not completed"
// @Router /chat/welcome [get]
func (h *ChatHandler) Welcome(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	messages, err := h.chatService.Welcome(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileRequired) {
			abortWithError(c, http.StatusConflict, "Complete onboarding before chatting with your coach")
		} else if errors.Is(err, repository.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "User not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load your coach")
		}
		return
	}

	c.JSON(http.StatusOK, messages)
}
