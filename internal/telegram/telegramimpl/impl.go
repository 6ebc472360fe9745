package telegramimpl

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/joynme/internal/telegram"
	"github.com/orgball2608/joynme/pkg/config"
	"github.com/orgball2608/joynme/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type TelegramImpl struct {
	TgBot   *tgbotapi.BotAPI
	Logger  logger.Logger
	Channel string
}

func New(opts Opts) (*TelegramImpl, error) {
	tgBot, err := tgbotapi.NewBotAPI(opts.Config.Telegram.BotToken)
	if err != nil {
		opts.Logger.Error("Error creating bot", "Error", err)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &TelegramImpl{
		TgBot:   tgBot,
		Logger:  opts.Logger.WithComponent("Telegram"),
		Channel: "@" + opts.Config.Telegram.Channel,
	}, nil
}

var _ telegram.Client = (*TelegramImpl)(nil)

// SendMessageToDefaultChannel sends a text message to the configured channel
func (tg *TelegramImpl) SendMessageToDefaultChannel(msg string) error {
	newMsg := tgbotapi.NewMessageToChannel(tg.Channel, msg)
	newMsg.ParseMode = tgbotapi.ModeMarkdownV2

	if _, err := tg.TgBot.Send(newMsg); err != nil {
		tg.Logger.Error("Error sending message to channel",
			"channel", tg.Channel,
			"error", err)
		return fmt.Errorf("failed to send message to channel: %w", err)
	}

	tg.Logger.Info("Message sent to channel", "channel", tg.Channel)
	return nil
}

// SendPhotoToDefaultChannel uploads a local photo to the configured channel
func (tg *TelegramImpl) SendPhotoToDefaultChannel(path string, caption string) error {
	photoMsg := tgbotapi.NewPhotoToChannel(tg.Channel, tgbotapi.FilePath(path))
	photoMsg.Caption = caption
	photoMsg.ParseMode = tgbotapi.ModeMarkdownV2

	if _, err := tg.TgBot.Send(photoMsg); err != nil {
		tg.Logger.Error("Error sending photo to channel",
			"channel", tg.Channel,
			"path", path,
			"error", err)
		return fmt.Errorf("failed to send photo to channel: %w", err)
	}

	tg.Logger.Info("Photo sent to channel", "channel", tg.Channel)
	return nil
}
