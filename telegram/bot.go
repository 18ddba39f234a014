package telegram

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ndemidov/trivia_bot/internal/config"
	"github.com/ndemidov/trivia_bot/internal/handlers"
	"github.com/ndemidov/trivia_bot/internal/repositories"
	"github.com/ndemidov/trivia_bot/pkg/logger"
	"gorm.io/gorm"
)

const workerCount = 10

type Bot struct {
	api      *tgbotapi.BotAPI
	config   *config.Config
	handlers *handlers.HandlerManager

	// Updates are hashed onto workers by chat id so each game's commands
	// are processed in arrival order.
	workerChans []chan tgbotapi.Update
}

func InitBot(cfg *config.Config, db *gorm.DB) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	if cfg.AppEnv == "development" {
		api.Debug = true
	}

	logger.Info("Authorized on account", "username", api.Self.UserName)

	gameRepo := repositories.NewGameRepository(db)
	quizRepo := repositories.NewQuizRepository(db)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	handlerMgr := handlers.NewHandlerManager(cfg, gameRepo, quizRepo, rng)

	bot := &Bot{
		api:         api,
		config:      cfg,
		handlers:    handlerMgr,
		workerChans: make([]chan tgbotapi.Update, workerCount),
	}

	for i := 0; i < workerCount; i++ {
		bot.workerChans[i] = make(chan tgbotapi.Update, 100)
		go bot.startWorker(bot.workerChans[i])
	}

	go bot.startUpdateListener()

	return bot, nil
}

func (b *Bot) startUpdateListener() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	for {
		logger.Info("Starting update listener...")
		updates := b.api.GetUpdatesChan(u)

		for update := range updates {
			chatID := updateChatID(update)
			if chatID == 0 {
				continue
			}

			workerIdx := chatID % int64(len(b.workerChans))
			if workerIdx < 0 {
				workerIdx = -workerIdx
			}
			b.workerChans[workerIdx] <- update
		}

		logger.Warn("Update channel closed. Restarting in 5 seconds...")
		time.Sleep(5 * time.Second)
	}
}

func (b *Bot) startWorker(ch chan tgbotapi.Update) {
	for update := range ch {
		b.handleUpdate(update)
	}
}

func updateChatID(update tgbotapi.Update) int64 {
	if update.Message != nil {
		return update.Message.Chat.ID
	}
	if update.CallbackQuery != nil && update.CallbackQuery.Message != nil {
		return update.CallbackQuery.Message.Chat.ID
	}
	return 0
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic in handleUpdate", "error", r)
		}
	}()

	if update.Message != nil {
		b.handleMessage(update.Message)
	} else if update.CallbackQuery != nil {
		b.handleCallbackQuery(update.CallbackQuery)
	}
}

func (b *Bot) handleMessage(message *tgbotapi.Message) {
	if message.From == nil || message.Text == "" {
		return
	}

	logger.Debug("Received message",
		"chat_id", message.Chat.ID,
		"user_id", message.From.ID,
		"text", message.Text,
	)

	b.handlers.HandleUpdate(handlers.Update{
		ChatID:    message.Chat.ID,
		UserID:    message.From.ID,
		Name:      message.From.FirstName,
		LastName:  message.From.LastName,
		Username:  message.From.UserName,
		MessageID: message.MessageID,
		Text:      message.Text,
	}, b)
}

// handleCallbackQuery turns an inline keyboard press into the command it
// carries as callback data.
func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	if query.Message == nil {
		return
	}

	b.answerCallbackQuery(query.ID)

	b.handlers.HandleUpdate(handlers.Update{
		ChatID:    query.Message.Chat.ID,
		UserID:    query.From.ID,
		Name:      query.From.FirstName,
		LastName:  query.From.LastName,
		Username:  query.From.UserName,
		MessageID: query.Message.MessageID,
		Text:      query.Data,
	}, b)
}

func (b *Bot) answerCallbackQuery(queryID string) {
	callback := tgbotapi.NewCallback(queryID, "")
	if _, err := b.api.Request(callback); err != nil {
		logger.Error("Failed to answer callback query", "error", err, "query_id", queryID)
	}
}

// SendMessage delivers a message with an optional keyboard and returns
// the sent message id, or 0 when delivery failed. Delivery is best-effort:
// a state transition that was already persisted stands even if this send
// never goes out.
func (b *Bot) SendMessage(chatID int64, text string, keyboard interface{}) int {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML

	if kb, ok := keyboard.(tgbotapi.InlineKeyboardMarkup); ok {
		msg.ReplyMarkup = kb
	}

	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		sentMsg, err := b.api.Send(msg)
		if err != nil {
			logger.Error("Failed to send message", "error", err, "chat_id", chatID, "attempt", i+1)

			if strings.Contains(err.Error(), "connection reset") ||
				strings.Contains(err.Error(), "timeout") ||
				strings.Contains(err.Error(), "network is unreachable") {
				time.Sleep(time.Duration(i+1) * time.Second)
				continue
			}
			return 0
		}
		return sentMsg.MessageID
	}
	return 0
}

// RemoveKeyboard strips the inline keyboard from a previously sent message.
func (b *Bot) RemoveKeyboard(chatID int64, messageID int) {
	if messageID == 0 {
		return
	}

	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	})
	if _, err := b.api.Request(edit); err != nil {
		logger.Error("Failed to remove keyboard", "error", err, "chat_id", chatID, "msg_id", messageID)
	}
}

func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
	b.handlers.Timers.Stop()
	logger.Info("Bot stopped receiving updates")
}
