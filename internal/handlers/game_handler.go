package handlers

import (
	stderrors "errors"
	"fmt"
	"time"

	"github.com/ndemidov/trivia_bot/internal/models"
	"github.com/ndemidov/trivia_bot/internal/security"
	"github.com/ndemidov/trivia_bot/pkg/errors"
	"github.com/ndemidov/trivia_bot/pkg/logger"
)

// HandleUpdate is the top-level dispatch for one inbound chat event.
// Guard failures inside handlers are silent no-ops so probing a game from
// the wrong state or actor leaks nothing; only unexpected store faults
// reach this point, where they are logged and the batch keeps draining.
func (h *HandlerManager) HandleUpdate(upd Update, bot Transport) {
	cmd := ParseCommand(upd.Text)

	var err error
	switch cmd.Kind {
	case CmdNewGame:
		err = h.HandleNewGame(upd, bot)
	case CmdJoinGame:
		err = h.HandleJoinGame(upd, bot)
	case CmdGameSettings:
		err = h.HandleGameSettings(upd, bot)
	case CmdPickRounds:
		err = h.HandlePickRounds(upd, cmd.Rounds, bot)
	case CmdStartGame:
		err = h.HandleStartGame(upd, bot)
	case CmdPickQuestion:
		err = h.HandlePickQuestion(upd, cmd.QuestionID, bot)
	case CmdAnswerQuestion:
		err = h.HandleAnswerQuestion(upd, cmd.QuestionID, bot)
	case CmdFinishGame:
		err = h.HandleFinishGame(upd, bot)
	case CmdScores:
		err = h.HandleScores(upd, bot)
	default:
		err = h.HandleAnswer(upd, bot)
	}

	if err != nil {
		logger.Error("Command handling failed", "chat_id", upd.ChatID, "text", upd.Text, "error", err)
	}
}

func isNotFound(err error) bool {
	var appErr *errors.AppError
	return stderrors.As(err, &appErr) && appErr.Code == errors.ErrCodeNotFound
}

// HandleNewGame opens a fresh game in registration status. A chat holds at
// most one non-finished game, so any stale one is force-finished first.
func (h *HandlerManager) HandleNewGame(upd Update, bot Transport) error {
	stale, err := h.Games.GetActiveGame(upd.ChatID)
	if err != nil {
		return err
	}
	if stale != nil {
		if err := h.finishGame(stale, bot, false); err != nil {
			return err
		}
	}

	game, err := h.Games.CreateGame(upd.ChatID)
	if err != nil {
		return err
	}

	chatID := upd.ChatID
	msgID := bot.SendMessage(chatID, MsgNewGame, JoinKeyboard())
	h.Timers.Schedule(game.ID, timerKindJoin,
		time.Duration(h.Config.JoinKeyboardSeconds)*time.Second, func() {
			bot.RemoveKeyboard(chatID, msgID)
		})

	return nil
}

func (h *HandlerManager) HandleJoinGame(upd Update, bot Transport) error {
	game, err := h.Games.GetActiveGame(upd.ChatID)
	if err != nil || game == nil {
		return err
	}
	if game.Status != models.GameStatusRegistration {
		return nil
	}

	player := &models.Player{
		TgID:     upd.UserID,
		Name:     security.CleanDisplayName(upd.Name),
		LastName: security.CleanDisplayName(upd.LastName),
		Username: upd.Username,
	}
	if player.Name == "" {
		player.Name = "Player"
	}

	if err := h.Games.RegisterPlayer(player, game.ID); err != nil {
		return err
	}

	bot.SendMessage(upd.ChatID, fmt.Sprintf(MsgPlayerJoined, player.Mention()), nil)
	return nil
}

func (h *HandlerManager) HandleGameSettings(upd Update, bot Transport) error {
	game, err := h.Games.GetActiveGame(upd.ChatID)
	if err != nil || game == nil {
		return err
	}
	if game.Status != models.GameStatusRegistration && game.Status != models.GameStatusSettingRound {
		return nil
	}

	player, err := h.Games.CheckIfPlaying(game.ID, upd.UserID)
	if err != nil {
		return err
	}
	if player == nil {
		return nil
	}

	bot.SendMessage(upd.ChatID, MsgChooseRounds, RoundsKeyboard())
	return h.Games.UpdateGame(game.ID, map[string]interface{}{
		"status": models.GameStatusSettingRound,
	})
}

func (h *HandlerManager) HandlePickRounds(upd Update, rounds int, bot Transport) error {
	if rounds < 1 || rounds > 10 {
		return nil
	}

	game, err := h.Games.GetActiveGame(upd.ChatID)
	if err != nil || game == nil {
		return err
	}
	if game.Status != models.GameStatusSettingRound {
		return nil
	}

	player, err := h.Games.CheckIfPlaying(game.ID, upd.UserID)
	if err != nil {
		return err
	}
	if player == nil {
		return nil
	}

	if err := h.Games.UpdateGame(game.ID, map[string]interface{}{
		"amount_of_rounds": rounds,
		"status":           models.GameStatusSettingQuestions,
	}); err != nil {
		return err
	}

	bot.SendMessage(upd.ChatID, fmt.Sprintf(MsgRoundsChosen, rounds), nil)
	bot.RemoveKeyboard(upd.ChatID, upd.MessageID)
	return nil
}

// HandleStartGame materializes rounds and themes, picks a random first
// actor and arms the overall game-expiry timer.
func (h *HandlerManager) HandleStartGame(upd Update, bot Transport) error {
	game, err := h.Games.GetActiveGame(upd.ChatID)
	if err != nil || game == nil {
		return err
	}

	switch game.Status {
	case models.GameStatusRegistration, models.GameStatusSettingRound, models.GameStatusSettingQuestions:
	default:
		return nil
	}
	if len(game.Scores) == 0 {
		return nil
	}

	first := h.randomPlayer(game.Scores)

	if err := h.Games.UpdateGame(game.ID, map[string]interface{}{
		"status": models.GameStatusStarted,
	}); err != nil {
		return err
	}
	if err := h.Games.MaterializeRoundThemes(game.ID, h.Config.ThemesPerRound); err != nil {
		return err
	}

	game, err = h.Games.GetGame(game.ID)
	if err != nil {
		return err
	}

	if err := h.Games.UpdateGame(game.ID, map[string]interface{}{
		"status":           models.GameStatusPickingQuestion,
		"player_old":       first.TgID,
		"player_answering": 0,
	}); err != nil {
		return err
	}

	h.printQuestionMenu(bot, game, first)

	gameID := game.ID
	h.Timers.Schedule(gameID, timerKindGame, h.Config.GetGameTimeout(game.AmountOfRounds), func() {
		if err := h.handleGameTimeout(gameID, bot); err != nil {
			logger.Error("Game timer failed", "game_id", gameID, "error", err)
		}
	})

	return nil
}

// HandlePickQuestion opens a question chosen by the turn holder and arms
// the answer-expiry timer for it.
func (h *HandlerManager) HandlePickQuestion(upd Update, questionID uint, bot Transport) error {
	game, err := h.Games.GetActiveGame(upd.ChatID)
	if err != nil || game == nil {
		return err
	}
	if game.Status != models.GameStatusPickingQuestion || game.CurrentQuestion != 0 {
		return nil
	}
	if game.PlayerOld != upd.UserID {
		return nil
	}
	if game.AnsweredQuestions.Contains(questionID) {
		return nil
	}

	player, err := h.Games.CheckIfPlaying(game.ID, upd.UserID)
	if err != nil {
		return err
	}
	if player == nil {
		return nil
	}

	question, err := h.Quiz.GetQuestion(questionID)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}

	if err := h.Games.UpdateGame(game.ID, map[string]interface{}{
		"current_question": question.ID,
		"player_answering": 0,
	}); err != nil {
		return err
	}

	msgID := bot.SendMessage(upd.ChatID, question.Title, AnswerKeyboard(question.ID))

	gameID := game.ID
	h.Timers.Schedule(gameID, timerKindAnswer, h.Config.GetAnswerTimeout(), func() {
		if err := h.handleAnswerTimeout(gameID, msgID, questionID, bot); err != nil {
			logger.Error("Answer timer failed", "game_id", gameID, "question_id", questionID, "error", err)
		}
	})

	return nil
}

// HandleAnswerQuestion claims the open question for the pressing player.
func (h *HandlerManager) HandleAnswerQuestion(upd Update, questionID uint, bot Transport) error {
	game, err := h.Games.GetActiveGame(upd.ChatID)
	if err != nil || game == nil {
		return err
	}
	if game.Status != models.GameStatusPickingQuestion {
		return nil
	}
	if game.CurrentQuestion == 0 || game.CurrentQuestion != questionID {
		return nil
	}

	player, err := h.Games.CheckIfPlaying(game.ID, upd.UserID)
	if err != nil {
		return err
	}
	if player == nil {
		return nil
	}

	if err := h.Games.UpdateGame(game.ID, map[string]interface{}{
		"status":           models.GameStatusAnsweringQuestion,
		"player_answering": player.TgID,
	}); err != nil {
		return err
	}

	bot.SendMessage(upd.ChatID, fmt.Sprintf(MsgAnswerNow, player.Mention()), nil)
	return nil
}

// HandleAnswer treats free text as an answer attempt by the claiming
// player and applies scoring and progression.
func (h *HandlerManager) HandleAnswer(upd Update, bot Transport) error {
	game, err := h.Games.GetActiveGame(upd.ChatID)
	if err != nil || game == nil {
		return err
	}
	if game.Status != models.GameStatusAnsweringQuestion || game.CurrentQuestion == 0 {
		return nil
	}
	if game.PlayerAnswering != upd.UserID {
		return nil
	}

	player, err := h.Games.CheckIfPlaying(game.ID, upd.UserID)
	if err != nil {
		return err
	}
	if player == nil {
		return nil
	}

	question, err := h.Quiz.GetQuestion(game.CurrentQuestion)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}

	score := game.ScoreOf(player.TgID)
	if score == nil {
		return nil
	}

	if h.Quiz.MatchAnswer(upd.Text, question.Answers) {
		if err := h.Games.UpdateScore(game.ID, player.TgID, map[string]interface{}{
			"points":          score.Points + question.Points,
			"correct_answers": score.CorrectAnswers + 1,
		}); err != nil {
			return err
		}
		bot.SendMessage(upd.ChatID, fmt.Sprintf(MsgCorrectAnswer, player.Mention(), question.Points), nil)
	} else {
		if err := h.Games.UpdateScore(game.ID, player.TgID, map[string]interface{}{
			"points":            score.Points - question.Points,
			"incorrect_answers": score.IncorrectAnswers + 1,
		}); err != nil {
			return err
		}
		bot.SendMessage(upd.ChatID, fmt.Sprintf(MsgWrongAnswer, player.Mention(), question.Points), nil)
	}

	h.Timers.Cancel(game.ID, timerKindAnswer)
	return h.resolveQuestion(game.ID, question.ID, player, bot)
}

func (h *HandlerManager) HandleFinishGame(upd Update, bot Transport) error {
	game, err := h.Games.GetActiveGame(upd.ChatID)
	if err != nil || game == nil {
		return err
	}
	return h.finishGame(game, bot, true)
}

// HandleScores emits the scoreboard of the chat's latest game without
// touching any state.
func (h *HandlerManager) HandleScores(upd Update, bot Transport) error {
	game, err := h.Games.GetLastGame(upd.ChatID)
	if err != nil || game == nil {
		return err
	}
	h.printScoreboard(bot, game)
	return nil
}
