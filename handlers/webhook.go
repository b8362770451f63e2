package handlers

import (
	"context"
	"net/http"

	"janjitemu/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UpdateDispatcher routes one decoded Telegram update into the conversation.
type UpdateDispatcher interface {
	Dispatch(ctx context.Context, update tgbotapi.Update) error
}

// TelegramWebhookHandler receives update callbacks from Telegram when the
// bot runs in webhook mode.
type TelegramWebhookHandler struct {
	dispatcher UpdateDispatcher
	token      string
}

func NewTelegramWebhookHandler(dispatcher UpdateDispatcher, token string) *TelegramWebhookHandler {
	return &TelegramWebhookHandler{dispatcher: dispatcher, token: token}
}

// HandleUpdate decodes and dispatches one update. The bot token doubles as
// the webhook path secret, the scheme Telegram itself recommends.
func (h *TelegramWebhookHandler) HandleUpdate(c *gin.Context) {
	if c.Param("token") != h.token {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown webhook path"})
		return
	}

	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid update payload", err.Error())
		return
	}

	if err := h.dispatcher.Dispatch(c.Request.Context(), update); err != nil {
		// Reply 200 regardless: Telegram retries non-2xx deliveries and the
		// conversation machine has already answered the user or logged.
		utils.GetLogger().Error("failed to handle webhook update", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
