package handlers

import (
	"fmt"
	"time"

	"github.com/ndemidov/trivia_bot/internal/models"
	"github.com/ndemidov/trivia_bot/pkg/logger"
)

// resolveQuestion closes the open question after any resolution (correct,
// incorrect, or timeout), passes the turn to the resolver, and advances
// the round or game once the menu is exhausted. Scoring has already been
// applied by the caller.
func (h *HandlerManager) resolveQuestion(gameID, questionID uint, resolver *models.Player, bot Transport) error {
	game, err := h.Games.GetGame(gameID)
	if err != nil {
		return err
	}

	answered := game.AnsweredQuestions
	if !answered.Contains(questionID) {
		answered = append(answered, questionID)
	}

	if err := h.Games.UpdateGame(gameID, map[string]interface{}{
		"status":             models.GameStatusPickingQuestion,
		"current_question":   0,
		"player_answering":   0,
		"player_old":         resolver.TgID,
		"answered_questions": answered,
	}); err != nil {
		return err
	}

	game, err = h.Games.GetGame(gameID)
	if err != nil {
		return err
	}

	return h.advance(game, resolver, bot)
}

func (h *HandlerManager) advance(game *models.Game, chooser *models.Player, bot Transport) error {
	if !game.CurrentRoundComplete() {
		h.printQuestionMenu(bot, game, chooser)
		return nil
	}

	if game.CurrentRound < game.AmountOfRounds {
		return h.nextRound(game, chooser, bot)
	}

	return h.declareWinner(game, bot)
}

func (h *HandlerManager) nextRound(game *models.Game, chooser *models.Player, bot Transport) error {
	if err := h.Games.UpdateGame(game.ID, map[string]interface{}{
		"current_round":      game.CurrentRound + 1,
		"current_question":   0,
		"answered_questions": models.QuestionIDs{},
	}); err != nil {
		return err
	}

	game, err := h.Games.GetGame(game.ID)
	if err != nil {
		return err
	}

	h.printScoreboard(bot, game)
	h.pause()
	h.printQuestionMenu(bot, game, chooser)
	return nil
}

// declareWinner ends the game. The leader wins only with a positive score
// that strictly beats the runner-up; otherwise friendship wins.
func (h *HandlerManager) declareWinner(game *models.Game, bot Transport) error {
	standings := game.Standings()

	var winner *models.GameScore
	if len(standings) > 0 && standings[0].Points > 0 {
		winner = &standings[0]
		if len(standings) > 1 && standings[0].Points == standings[1].Points {
			winner = nil
		}
	}

	if winner != nil {
		bot.SendMessage(game.ChatID, fmt.Sprintf(MsgWinner, winner.Player.Mention()), nil)
		if err := h.Games.IncrementWinCount(winner.PlayerTgID); err != nil {
			return err
		}
	} else {
		bot.SendMessage(game.ChatID, MsgFriendshipWins, nil)
	}

	return h.finishGame(game, bot, true)
}

// finishGame is the single place a game reaches its terminal status. Every
// timer the game still owns is cancelled; a callback already in flight
// will find the FINISHED status and no-op.
func (h *HandlerManager) finishGame(game *models.Game, bot Transport, announce bool) error {
	now := time.Now()
	if err := h.Games.UpdateGame(game.ID, map[string]interface{}{
		"status":      models.GameStatusFinished,
		"finished_at": &now,
	}); err != nil {
		return err
	}

	h.Timers.CancelGame(game.ID)

	if announce {
		bot.SendMessage(game.ChatID, MsgGameOver, nil)
	}
	return nil
}

// handleAnswerTimeout fires when an open question was not resolved in
// time. The game is re-loaded first: unless the armed question is still
// the open one, something else already resolved it and the fire is stale.
func (h *HandlerManager) handleAnswerTimeout(gameID uint, messageID int, questionID uint, bot Transport) error {
	game, err := h.Games.GetGame(gameID)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}

	if game.Status == models.GameStatusFinished || game.CurrentQuestion != questionID {
		logger.Debug("Stale answer timer", "game_id", gameID, "question_id", questionID)
		return nil
	}

	bot.RemoveKeyboard(game.ChatID, messageID)
	bot.SendMessage(game.ChatID, MsgAnswerTimeout, nil)

	chooser, err := h.Games.CheckIfPlaying(gameID, game.PlayerOld)
	if err != nil {
		return err
	}
	if chooser == nil {
		return nil
	}

	// No points move on a timeout; the turn stays with the same picker.
	return h.resolveQuestion(gameID, questionID, chooser, bot)
}

// handleGameTimeout force-finishes a game whose overall time expired.
func (h *HandlerManager) handleGameTimeout(gameID uint, bot Transport) error {
	game, err := h.Games.GetGame(gameID)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}

	if game.Status == models.GameStatusFinished {
		return nil
	}

	bot.SendMessage(game.ChatID, MsgGameTimeout, nil)
	return h.finishGame(game, bot, false)
}

func (h *HandlerManager) printQuestionMenu(bot Transport, game *models.Game, chooser *models.Player) {
	round := game.Round(game.CurrentRound)
	if round == nil {
		logger.Warn("No materialized round to present", "game_id", game.ID, "round", game.CurrentRound)
		return
	}

	bot.SendMessage(game.ChatID, fmt.Sprintf(MsgRoundHeader, round.Number), nil)
	for i := range round.Themes {
		h.pause()
		theme := round.Themes[i].Theme
		bot.SendMessage(game.ChatID, theme.Title, ThemeKeyboard(theme, game.AnsweredQuestions))
	}
	bot.SendMessage(game.ChatID, fmt.Sprintf(MsgChooseQuestion, chooser.Mention()), nil)
}

func (h *HandlerManager) printScoreboard(bot Transport, game *models.Game) {
	text := MsgScoreboard
	for _, score := range game.Standings() {
		text += fmt.Sprintf(MsgScoreboardLine,
			score.Player.Mention(), score.Points, score.CorrectAnswers, score.IncorrectAnswers)
	}
	bot.SendMessage(game.ChatID, text, nil)
}
