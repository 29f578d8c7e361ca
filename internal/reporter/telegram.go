package reporter

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-applyninja-automation/internal/models"
)

// TelegramReporter pushes batch outcomes to the operator's chat.
type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramReporter(token string, chatID int64) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	return &TelegramReporter{
		bot:    bot,
		chatID: chatID,
	}, nil
}

func (t *TelegramReporter) sendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML" //use HTML for bold/italic
	_, err := t.bot.Send(msg)
	return err
}

// SendBatchSummary reports a finished batch run.
func (t *TelegramReporter) SendBatchSummary(rec models.ApplicationRecord) error {
	text := fmt.Sprintf(
		"🏁 <b>Batch finished</b>\n"+
			"🏢 %s\n"+
			"🎯 %s\n"+
			"📊 %s\n"+
			"🕒 %s",
		rec.Company,
		rec.Role,
		rec.Status,
		rec.Date,
	)
	return t.sendMessage(text)
}

func (t *TelegramReporter) SendError(errReq error) error {
	text := fmt.Sprintf("⚠️ <b>ApplyNinja Error</b>:\n%v", errReq)
	return t.sendMessage(text)
}
