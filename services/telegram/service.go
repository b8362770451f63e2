package telegram

import (
	"context"
	"fmt"
	"strconv"

	"janjitemu/services/conversation"
	"janjitemu/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// sender is the slice of tgbotapi.BotAPI the service needs; kept narrow so
// tests can fake it.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Service connects the Telegram Bot API to the conversation machine. The same
// service backs both hosting modes: webhook delivery and long polling.
type Service struct {
	Bot     *tgbotapi.BotAPI
	Machine *conversation.Machine
}

// New authenticates against the Telegram Bot API.
func New(token string, machine *conversation.Machine) (*Service, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Telegram: %w", err)
	}
	return &Service{Bot: bot, Machine: machine}, nil
}

// Dispatch feeds one inbound update into the conversation machine.
func (s *Service) Dispatch(ctx context.Context, update tgbotapi.Update) error {
	if update.Message == nil || update.Message.Text == "" {
		return nil
	}
	chatID := update.Message.Chat.ID
	r := &replier{bot: s.Bot, chatID: chatID}
	return s.Machine.Handle(ctx, strconv.FormatInt(chatID, 10), update.Message.Text, r)
}

// RunPolling consumes updates over long polling until ctx is cancelled.
// Updates are handled one at a time, preserving per-chat message order.
func (s *Service) RunPolling(ctx context.Context) {
	logger := utils.GetLogger()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := s.Bot.GetUpdatesChan(u)

	logger.Info("Telegram polling started", zap.String("bot", s.Bot.Self.UserName))
	for {
		select {
		case <-ctx.Done():
			s.Bot.StopReceivingUpdates()
			return
		case update := <-updates:
			if err := s.Dispatch(ctx, update); err != nil {
				logger.Error("failed to handle update", zap.Error(err))
			}
		}
	}
}

// EnsureWebhook registers baseURL + the token path with Telegram so updates
// arrive over HTTPS instead of polling.
func (s *Service) EnsureWebhook(baseURL string) error {
	if baseURL == "" {
		return fmt.Errorf("webhook mode requires TELEGRAM_WEBHOOK_URL")
	}
	wh, err := tgbotapi.NewWebhook(baseURL + "/telegram/webhook/" + s.Bot.Token)
	if err != nil {
		return fmt.Errorf("bad webhook URL: %w", err)
	}
	if _, err := s.Bot.Request(wh); err != nil {
		return fmt.Errorf("failed to register webhook: %w", err)
	}
	return nil
}

// SendText delivers a plain message outside a conversation turn, e.g. an
// appointment reminder.
func (s *Service) SendText(chatID string, text string) error {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return fmt.Errorf("bad chat id %q: %w", chatID, err)
	}
	_, err = s.Bot.Send(tgbotapi.NewMessage(id, text))
	return err
}

// replier renders machine replies as Telegram messages, with choice lists as
// one-time reply keyboards.
type replier struct {
	bot    sender
	chatID int64
}

func (r *replier) Reply(text string) error {
	msg := tgbotapi.NewMessage(r.chatID, text)
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	_, err := r.bot.Send(msg)
	return err
}

func (r *replier) ReplyWithChoices(text string, choices []string) error {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(choices))
	for _, choice := range choices {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(choice)))
	}
	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.OneTimeKeyboard = true

	msg := tgbotapi.NewMessage(r.chatID, text)
	msg.ReplyMarkup = keyboard
	_, err := r.bot.Send(msg)
	return err
}
