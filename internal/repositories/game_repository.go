package repositories

import (
	"github.com/ndemidov/trivia_bot/internal/models"
	"github.com/ndemidov/trivia_bot/pkg/errors"
	"github.com/ndemidov/trivia_bot/pkg/logger"
	"gorm.io/gorm"
)

type GameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) withGameAggregate() *gorm.DB {
	return r.db.
		Preload("Scores.Player").
		Preload("Rounds", func(db *gorm.DB) *gorm.DB {
			return db.Order("rounds.number ASC")
		}).
		Preload("Rounds.Themes.Theme.Questions.Answers")
}

// GetActiveGame retrieves the one non-finished game of a chat, or nil if
// the chat has none.
func (r *GameRepository) GetActiveGame(chatID int64) (*models.Game, error) {
	var game models.Game
	result := r.withGameAggregate().
		Where("chat_id = ? AND status != ?", chatID, models.GameStatusFinished).
		Order("started_at DESC").
		First(&game)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get active game")
	}

	return &game, nil
}

// GetGame retrieves a game by ID with players, rounds and questions loaded.
func (r *GameRepository) GetGame(gameID uint) (*models.Game, error) {
	var game models.Game
	result := r.withGameAggregate().First(&game, gameID)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "game not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get game")
	}

	return &game, nil
}

// GetLastGame retrieves the most recent game of a chat regardless of status.
func (r *GameRepository) GetLastGame(chatID int64) (*models.Game, error) {
	var game models.Game
	result := r.withGameAggregate().
		Where("chat_id = ?", chatID).
		Order("started_at DESC").
		First(&game)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get last game")
	}

	return &game, nil
}

// CreateGame creates a new game in registration status.
func (r *GameRepository) CreateGame(chatID int64) (*models.Game, error) {
	game := &models.Game{
		ChatID:            chatID,
		Status:            models.GameStatusRegistration,
		AmountOfRounds:    1,
		CurrentRound:      1,
		AnsweredQuestions: models.QuestionIDs{},
	}

	if err := r.db.Create(game).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to create game")
	}

	return game, nil
}

// UpdateGame applies a partial field update to a game.
func (r *GameRepository) UpdateGame(gameID uint, fields map[string]interface{}) error {
	result := r.db.Model(&models.Game{}).
		Where("id = ?", gameID).
		Updates(fields)

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to update game")
	}

	return nil
}

// RegisterPlayer upserts the player record and binds it to the game with a
// zero score. Registering the same player twice is a no-op.
func (r *GameRepository) RegisterPlayer(player *models.Player, gameID uint) error {
	if err := r.db.Where(models.Player{TgID: player.TgID}).
		Attrs(models.Player{
			Name:     player.Name,
			LastName: player.LastName,
			Username: player.Username,
		}).
		FirstOrCreate(player).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to upsert player")
	}

	score := models.GameScore{GameID: gameID, PlayerTgID: player.TgID}
	result := r.db.Where(models.GameScore{GameID: gameID, PlayerTgID: player.TgID}).
		FirstOrCreate(&score)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to bind player to game")
	}
	if result.RowsAffected == 0 {
		logger.Debug("Duplicate registration ignored", "game_id", gameID, "tg_id", player.TgID)
	}

	return nil
}

// UpdateScore applies a partial update to a player's per-game score row.
func (r *GameRepository) UpdateScore(gameID uint, tgID int64, fields map[string]interface{}) error {
	result := r.db.Model(&models.GameScore{}).
		Where("game_id = ? AND player_tg_id = ?", gameID, tgID).
		Updates(fields)

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to update score")
	}

	return nil
}

// IncrementWinCount bumps the player's lifetime win counter.
func (r *GameRepository) IncrementWinCount(tgID int64) error {
	result := r.db.Model(&models.Player{}).
		Where("tg_id = ?", tgID).
		Update("win_counts", gorm.Expr("win_counts + 1"))

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to increment win count")
	}

	return nil
}

// CheckIfPlaying returns the player if they are registered in the game,
// nil otherwise.
func (r *GameRepository) CheckIfPlaying(gameID uint, tgID int64) (*models.Player, error) {
	var score models.GameScore
	result := r.db.Where("game_id = ? AND player_tg_id = ?", gameID, tgID).
		Preload("Player").
		First(&score)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to check player")
	}

	return &score.Player, nil
}

// MaterializeRoundThemes creates the game's rounds and assigns random
// themes to each of them.
func (r *GameRepository) MaterializeRoundThemes(gameID uint, themesPerRound int) error {
	var game models.Game
	if err := r.db.First(&game, gameID).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to load game")
	}

	for number := 1; number <= game.AmountOfRounds; number++ {
		round := models.Round{GameID: gameID, Number: number}
		if err := r.db.Create(&round).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create round")
		}

		var themes []models.Theme
		if err := r.db.Order("RANDOM()").Limit(themesPerRound).Find(&themes).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to pick themes")
		}
		if len(themes) == 0 {
			return errors.New(errors.ErrCodeNotFound, "no themes available")
		}

		for _, theme := range themes {
			set := models.RoundTheme{RoundID: round.ID, ThemeID: theme.ID}
			if err := r.db.Create(&set).Error; err != nil {
				return errors.Wrap(err, errors.ErrCodeInternalError, "failed to assign theme")
			}
		}
	}

	return nil
}

// ListGames retrieves game history, newest first.
func (r *GameRepository) ListGames(page, pageSize int) ([]models.Game, error) {
	var games []models.Game
	query := r.db.Order("started_at DESC")
	if pageSize > 0 {
		query = query.Offset(page * pageSize).Limit(pageSize)
	}

	if err := query.Find(&games).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list games")
	}

	return games, nil
}
