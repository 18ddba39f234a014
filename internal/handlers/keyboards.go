package handlers

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ndemidov/trivia_bot/internal/models"
)

// JoinKeyboard creates the registration button shown under the new-game
// announcement.
func JoinKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Join!", cmdJoinGame),
		),
	)
}

// RoundsKeyboard creates the round-count selection keyboard.
func RoundsKeyboard() tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for n := 1; n <= 3; n++ {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			strconv.Itoa(n), fmt.Sprintf("%s%d", cmdPickRoundsPrefix, n),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(row...))
}

// ThemeKeyboard creates one row of point-valued buttons per theme,
// excluding questions already answered in the round.
func ThemeKeyboard(theme models.Theme, answered models.QuestionIDs) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var currentRow []tgbotapi.InlineKeyboardButton

	for _, question := range theme.Questions {
		if answered.Contains(question.ID) {
			continue
		}
		currentRow = append(currentRow, tgbotapi.NewInlineKeyboardButtonData(
			strconv.Itoa(question.Points),
			fmt.Sprintf("%s%d", cmdPickQuestionPrefix, question.ID),
		))
		if len(currentRow) == 5 {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(currentRow...))
			currentRow = []tgbotapi.InlineKeyboardButton{}
		}
	}
	if len(currentRow) > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(currentRow...))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// AnswerKeyboard creates the single "Answer" button under an open question.
func AnswerKeyboard(questionID uint) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				"Answer", fmt.Sprintf("%s%d", cmdAnswerQuestionPrefix, questionID),
			),
		),
	)
}
