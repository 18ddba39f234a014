package models

import "testing"

func testRound(number int, questionsPerTheme ...int) Round {
	round := Round{Number: number}
	qid := uint(number * 100)
	for _, count := range questionsPerTheme {
		theme := Theme{}
		for i := 0; i < count; i++ {
			qid++
			theme.Questions = append(theme.Questions, Question{ID: qid})
		}
		round.Themes = append(round.Themes, RoundTheme{Theme: theme})
	}
	return round
}

func TestGame_QuestionsInCurrentRound(t *testing.T) {
	game := &Game{
		CurrentRound: 2,
		Rounds: []Round{
			testRound(1, 3, 3),
			testRound(2, 3, 3, 3),
		},
	}

	if got := game.QuestionsInCurrentRound(); got != 9 {
		t.Errorf("QuestionsInCurrentRound() = %d, want 9", got)
	}

	game.CurrentRound = 3
	if got := game.QuestionsInCurrentRound(); got != 0 {
		t.Errorf("QuestionsInCurrentRound() = %d, want 0 for missing round", got)
	}
}

func TestGame_CurrentRoundComplete(t *testing.T) {
	game := &Game{
		CurrentRound: 1,
		Rounds:       []Round{testRound(1, 2, 2)},
	}

	if game.CurrentRoundComplete() {
		t.Error("CurrentRoundComplete() = true for empty answered set")
	}

	game.AnsweredQuestions = QuestionIDs{101, 102, 103, 104}
	if !game.CurrentRoundComplete() {
		t.Error("CurrentRoundComplete() = false after all questions answered")
	}
}

func TestGame_Standings(t *testing.T) {
	game := &Game{
		Scores: []GameScore{
			{PlayerTgID: 1, Points: 10},
			{PlayerTgID: 2, Points: 40},
			{PlayerTgID: 3, Points: -20},
		},
	}

	standings := game.Standings()
	if standings[0].PlayerTgID != 2 || standings[1].PlayerTgID != 1 || standings[2].PlayerTgID != 3 {
		t.Errorf("Standings() order = %v, %v, %v, want 2, 1, 3",
			standings[0].PlayerTgID, standings[1].PlayerTgID, standings[2].PlayerTgID)
	}

	// Original slice must stay untouched
	if game.Scores[0].PlayerTgID != 1 {
		t.Error("Standings() mutated the underlying score slice")
	}
}

func TestQuestionIDs_Contains(t *testing.T) {
	ids := QuestionIDs{1, 5, 9}

	if !ids.Contains(5) {
		t.Error("Contains(5) = false, want true")
	}
	if ids.Contains(7) {
		t.Error("Contains(7) = true, want false")
	}
}

func TestQuestionIDs_ScanValue(t *testing.T) {
	ids := QuestionIDs{3, 7}

	raw, err := ids.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}

	var decoded QuestionIDs
	if err := decoded.Scan(raw); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(decoded) != 2 || decoded[0] != 3 || decoded[1] != 7 {
		t.Errorf("Scan(Value()) = %v, want [3 7]", decoded)
	}

	var empty QuestionIDs
	if err := empty.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) error = %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("Scan(nil) = %v, want empty set", empty)
	}
}
