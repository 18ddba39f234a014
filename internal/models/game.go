package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Game status constants
const (
	GameStatusRegistration      = "registration"
	GameStatusSettingRound      = "setting_round"
	GameStatusSettingQuestions  = "setting_questions"
	GameStatusStarted           = "started"
	GameStatusPickingQuestion   = "picking_question"
	GameStatusAnsweringQuestion = "answering_question"
	GameStatusFinished          = "finished"
)

// QuestionIDs is the set of question ids already answered in the current
// round, stored as a JSON array.
type QuestionIDs []uint

func (q QuestionIDs) Value() (driver.Value, error) {
	if q == nil {
		q = QuestionIDs{}
	}
	return json.Marshal(q)
}

func (q *QuestionIDs) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*q = QuestionIDs{}
		return nil
	case []byte:
		return json.Unmarshal(v, q)
	case string:
		return json.Unmarshal([]byte(v), q)
	default:
		return fmt.Errorf("unsupported type for QuestionIDs: %T", value)
	}
}

func (q QuestionIDs) Contains(id uint) bool {
	for _, answered := range q {
		if answered == id {
			return true
		}
	}
	return false
}

type Game struct {
	ID                uint        `gorm:"primaryKey"`
	ChatID            int64       `gorm:"not null;index"`
	Status            string      `gorm:"type:varchar(20);default:'registration';index"`
	AmountOfRounds    int         `gorm:"default:1"`
	CurrentRound      int         `gorm:"default:1"`
	CurrentQuestion   uint        `gorm:"default:0"`
	PlayerOld         int64       `gorm:"default:0"`
	PlayerAnswering   int64       `gorm:"default:0"`
	AnsweredQuestions QuestionIDs `gorm:"type:jsonb"`
	StartedAt         time.Time   `gorm:"autoCreateTime"`
	FinishedAt        *time.Time

	Scores []GameScore `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
	Rounds []Round     `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
}

func (Game) TableName() string {
	return "games"
}

// Round returns the round with the given 1-based number, or nil.
func (g *Game) Round(number int) *Round {
	for i := range g.Rounds {
		if g.Rounds[i].Number == number {
			return &g.Rounds[i]
		}
	}
	return nil
}

// QuestionsInCurrentRound is the total question count across the current
// round's themes. The round is complete once AnsweredQuestions reaches it.
func (g *Game) QuestionsInCurrentRound() int {
	round := g.Round(g.CurrentRound)
	if round == nil {
		return 0
	}
	return round.QuestionTotal()
}

func (g *Game) CurrentRoundComplete() bool {
	total := g.QuestionsInCurrentRound()
	return total > 0 && len(g.AnsweredQuestions) >= total
}

// ScoreOf returns the per-game score row of the given player, or nil if
// they are not registered in this game.
func (g *Game) ScoreOf(tgID int64) *GameScore {
	for i := range g.Scores {
		if g.Scores[i].PlayerTgID == tgID {
			return &g.Scores[i]
		}
	}
	return nil
}

// Standings returns the per-game scores ordered by points descending.
func (g *Game) Standings() []GameScore {
	standings := make([]GameScore, len(g.Scores))
	copy(standings, g.Scores)
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Points > standings[j].Points
	})
	return standings
}

type GameScore struct {
	ID               uint   `gorm:"primaryKey"`
	GameID           uint   `gorm:"not null;uniqueIndex:idx_player_in_game"`
	PlayerTgID       int64  `gorm:"not null;uniqueIndex:idx_player_in_game"`
	Player           Player `gorm:"foreignKey:PlayerTgID;references:TgID;constraint:OnDelete:CASCADE"`
	Points           int    `gorm:"default:0"`
	CorrectAnswers   int    `gorm:"default:0"`
	IncorrectAnswers int    `gorm:"default:0"`
}

func (GameScore) TableName() string {
	return "game_scores"
}
