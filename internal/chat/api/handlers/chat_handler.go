package handlers

import (
	"fmt"
	"net/url"
	"strconv"

	"job_board_service/internal/chat/app"
	"job_board_service/pkg/logger"
	"job_board_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChatHandler serves the REST side of the chat service: history,
// notifications and deletion. Live traffic goes through the websocket
// gateway instead.
type ChatHandler struct {
	MessageUC      *app.MessageUseCase
	NotificationUC *app.NotificationUseCase
}

// NewChatHandler create ChatHandler
func NewChatHandler(messageUC *app.MessageUseCase, notificationUC *app.NotificationUseCase) *ChatHandler {
	return &ChatHandler{
		MessageUC:      messageUC,
		NotificationUC: notificationUC,
	}
}

// ConnectCheck check api connect start
// @Summary Check chat service status
// @Description Returns a simple confirmation message
// @Tags Shared
// @Success 200 {string} string "chat service start!"
// @Router / [get]
func ConnectCheck(c *fiber.Ctx) error {
	return c.SendString("chat service start!")
}

// DebugLogFlag toggle debug log flag
// @Summary Toggle Debug Log Flag
// @Description Enable or disable debug logging
// @Tags Shared
// @Param service query string true "Service name"
// @Param status query bool true "Debug status"
// @Success 200 {string} string "Service debug mode updated"
// @Failure 400 {string} string "Invalid status value"
// @Router /debug [post]
func DebugLogFlag(c *fiber.Ctx) error {
	query, _ := url.ParseQuery(string(c.Context().QueryArgs().QueryString()))
	service := query.Get("service")
	statusStr := query.Get("status")
	logger.Log.Info("debug", zap.String("status", statusStr))
	status, err := strconv.ParseBool(statusStr)
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	switch service {
	default:
		logger.Log.SetDebugMode(status)
	}
	return c.SendString(fmt.Sprintf("service[%s]: debug mode is : %t", service, status))
}

// GetNotifications list unread summaries for the caller
// @Summary Unread notification summary
// @Description Groups the caller's unread messages per sender, job and application
// @Tags Chat
// @Produce json
// @Param auth query string false "JWT"
// @Success 200 {array} domain.Notification "unread groups"
// @Failure 500 {object} string "server error"
// @Router /api/chat/notifications [get]
func (h *ChatHandler) GetNotifications(c *fiber.Ctx) error {
	partyID, _ := c.Locals(middlewares.TokenPartyID).(string)

	notifications, err := h.NotificationUC.ForParty(c.Context(), partyID)
	if err != nil {
		logger.Log.Error("notification aggregation failed",
			zap.String("party", partyID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load notifications"})
	}
	return c.JSON(notifications)
}

// GetHistory full conversation for one application
// @Summary Conversation history
// @Description Returns every message of the application's conversation in send order
// @Tags Chat
// @Produce json
// @Param applicationId path string true "Application ID"
// @Success 200 {array} domain.ResolvedMessage "messages"
// @Failure 400 {object} string "invalid application id"
// @Failure 500 {object} string "server error"
// @Router /api/chat/{applicationId} [get]
func (h *ChatHandler) GetHistory(c *fiber.Ctx) error {
	applicationID := c.Params("applicationId")
	if _, err := uuid.Parse(applicationID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid application id"})
	}

	history, err := h.MessageUC.History(c.Context(), applicationID)
	if err != nil {
		logger.Log.Error("history load failed",
			zap.String("application", applicationID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load chat history"})
	}
	return c.JSON(history)
}

// DeleteHistory remove one application's conversation
// @Summary Delete conversation
// @Description Removes the application's conversation permanently; deleting an absent conversation still succeeds
// @Tags Chat
// @Produce json
// @Param applicationId path string true "Application ID"
// @Success 200 {object} string "deleted"
// @Failure 400 {object} string "invalid application id"
// @Failure 500 {object} string "server error"
// @Router /api/chat/{applicationId} [delete]
func (h *ChatHandler) DeleteHistory(c *fiber.Ctx) error {
	applicationID := c.Params("applicationId")
	if _, err := uuid.Parse(applicationID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid application id"})
	}

	if err := h.MessageUC.DeleteHistory(c.Context(), applicationID); err != nil {
		logger.Log.Error("history delete failed",
			zap.String("application", applicationID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete chat history"})
	}
	return c.JSON(fiber.Map{"message": "chat history deleted"})
}
