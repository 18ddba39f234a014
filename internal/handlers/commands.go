package handlers

import (
	"strconv"
	"strings"
)

type CommandKind int

const (
	// CmdAnswerText is any text that is not a known command; it is treated
	// as an answer attempt for the open question.
	CmdAnswerText CommandKind = iota
	CmdNewGame
	CmdJoinGame
	CmdGameSettings
	CmdPickRounds
	CmdStartGame
	CmdPickQuestion
	CmdAnswerQuestion
	CmdFinishGame
	CmdScores
)

// Command is an inbound chat command parsed once at ingress.
type Command struct {
	Kind       CommandKind
	Rounds     int  // CmdPickRounds
	QuestionID uint // CmdPickQuestion, CmdAnswerQuestion
}

const (
	cmdNewGamePrefix        = "/new_game"
	cmdJoinGame             = "/join_game"
	cmdGameSettingsPrefix   = "/game_settings"
	cmdPickRoundsPrefix     = "/pick_rounds_"
	cmdStartGamePrefix      = "/start_game"
	cmdPickQuestionPrefix   = "/pick_question_"
	cmdAnswerQuestionPrefix = "/answer_question_"
	cmdFinishGamePrefix     = "/finish_game"
	cmdScoresPrefix         = "/scores"
)

// ParseCommand classifies the message text. Malformed numeric suffixes
// degrade to CmdAnswerText, which the answer guards reject downstream.
func ParseCommand(text string) Command {
	switch {
	case strings.HasPrefix(text, cmdNewGamePrefix):
		return Command{Kind: CmdNewGame}
	case text == cmdJoinGame:
		return Command{Kind: CmdJoinGame}
	case strings.HasPrefix(text, cmdGameSettingsPrefix):
		return Command{Kind: CmdGameSettings}
	case strings.HasPrefix(text, cmdPickRoundsPrefix):
		n, err := strconv.Atoi(text[len(cmdPickRoundsPrefix):])
		if err != nil {
			return Command{Kind: CmdAnswerText}
		}
		return Command{Kind: CmdPickRounds, Rounds: n}
	case strings.HasPrefix(text, cmdStartGamePrefix):
		return Command{Kind: CmdStartGame}
	case strings.HasPrefix(text, cmdPickQuestionPrefix):
		id, err := strconv.ParseUint(text[len(cmdPickQuestionPrefix):], 10, 32)
		if err != nil {
			return Command{Kind: CmdAnswerText}
		}
		return Command{Kind: CmdPickQuestion, QuestionID: uint(id)}
	case strings.HasPrefix(text, cmdAnswerQuestionPrefix):
		id, err := strconv.ParseUint(text[len(cmdAnswerQuestionPrefix):], 10, 32)
		if err != nil {
			return Command{Kind: CmdAnswerText}
		}
		return Command{Kind: CmdAnswerQuestion, QuestionID: uint(id)}
	case strings.HasPrefix(text, cmdFinishGamePrefix):
		return Command{Kind: CmdFinishGame}
	case strings.HasPrefix(text, cmdScoresPrefix):
		return Command{Kind: CmdScores}
	default:
		return Command{Kind: CmdAnswerText}
	}
}
