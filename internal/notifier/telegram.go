package notifier

import (
	"context"
	"net/http"
	"strconv"
	"time"

	tele "gopkg.in/telebot.v4"
)

// Telegram sends reminders through the Telegram Bot API. The HTTP client
// carries the delivery timeout so a slow API call can never stall a sweep.
type Telegram struct {
	bot *tele.Bot
}

func NewTelegram(token string, timeout time.Duration) (*Telegram, error) {
	b, err := tele.NewBot(tele.Settings{
		Token:  token,
		Client: &http.Client{Timeout: timeout},
	})
	if err != nil {
		return nil, err
	}
	return &Telegram{bot: b}, nil
}

func (t *Telegram) Send(ctx context.Context, chatID string, text string) error {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return &DeliveryError{ChatID: chatID, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return &DeliveryError{ChatID: chatID, Err: err}
	}

	if _, err := t.bot.Send(tele.ChatID(id), text); err != nil {
		return &DeliveryError{ChatID: chatID, Err: err}
	}
	return nil
}
