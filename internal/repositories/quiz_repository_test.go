package repositories

import (
	"testing"

	"github.com/ndemidov/trivia_bot/internal/models"
)

func TestMatchAnswer(t *testing.T) {
	answers := []models.Answer{
		{Title: "The Nile"},
		{Title: "Nile"},
	}

	repo := &QuizRepository{}

	tests := []struct {
		name  string
		given string
		want  bool
	}{
		{"exact", "Nile", true},
		{"case insensitive", "the nile", true},
		{"surrounding whitespace", "  Nile  ", true},
		{"punctuation stripped", "The Nile!", true},
		{"collapsed spaces", "The   Nile", true},
		{"wrong answer", "Amazon", false},
		{"partial", "Nil", false},
		{"empty", "", false},
		{"punctuation only", "?!.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repo.MatchAnswer(tt.given, answers); got != tt.want {
				t.Errorf("MatchAnswer(%q) = %v, want %v", tt.given, got, tt.want)
			}
		})
	}
}
