package handlers

import (
	"math/rand"
	"sync"
	"time"

	"github.com/ndemidov/trivia_bot/internal/config"
	"github.com/ndemidov/trivia_bot/internal/models"
)

// Transport delivers messages and keyboards to a chat. telegram.Bot is the
// production implementation.
type Transport interface {
	SendMessage(chatID int64, text string, keyboard interface{}) int
	RemoveKeyboard(chatID int64, messageID int)
}

// GameStore is the durable game state consumed by the orchestrator. The
// gorm-backed repositories.GameRepository implements it.
type GameStore interface {
	GetActiveGame(chatID int64) (*models.Game, error)
	GetGame(gameID uint) (*models.Game, error)
	GetLastGame(chatID int64) (*models.Game, error)
	CreateGame(chatID int64) (*models.Game, error)
	UpdateGame(gameID uint, fields map[string]interface{}) error
	RegisterPlayer(player *models.Player, gameID uint) error
	UpdateScore(gameID uint, tgID int64, fields map[string]interface{}) error
	IncrementWinCount(tgID int64) error
	CheckIfPlaying(gameID uint, tgID int64) (*models.Player, error)
	MaterializeRoundThemes(gameID uint, themesPerRound int) error
}

// QuestionBank supplies questions and the answer-matching predicate.
type QuestionBank interface {
	GetQuestion(id uint) (*models.Question, error)
	MatchAnswer(given string, answers []models.Answer) bool
}

// Update is one inbound chat event, either a text message or an inline
// keyboard press carrying a command as callback data.
type Update struct {
	ChatID    int64
	UserID    int64
	Name      string
	LastName  string
	Username  string
	MessageID int
	Text      string
}

type HandlerManager struct {
	Config *config.Config
	Games  GameStore
	Quiz   QuestionBank
	Timers *Scheduler

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewHandlerManager(cfg *config.Config, games GameStore, quiz QuestionBank, rng *rand.Rand) *HandlerManager {
	return &HandlerManager{
		Config: cfg,
		Games:  games,
		Quiz:   quiz,
		Timers: NewScheduler(),
		rng:    rng,
	}
}

// randomPlayer picks the first actor of a game.
func (h *HandlerManager) randomPlayer(scores []models.GameScore) *models.Player {
	h.rngMu.Lock()
	idx := h.rng.Intn(len(scores))
	h.rngMu.Unlock()
	return &scores[idx].Player
}

// pause spaces consecutive chat messages so the menu stays readable.
func (h *HandlerManager) pause() {
	time.Sleep(h.Config.GetMenuPause())
}
