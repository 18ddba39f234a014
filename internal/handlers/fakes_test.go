package handlers

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ndemidov/trivia_bot/internal/models"
	"github.com/ndemidov/trivia_bot/pkg/errors"
)

// fakeStore is an in-memory GameStore with the same observable contract
// as the gorm repository: loads return snapshots, partial updates go
// through field maps, duplicate registrations are ignored.
type fakeStore struct {
	mu      sync.Mutex
	games   map[uint]*models.Game
	players map[int64]*models.Player
	themes  []models.Theme
	nextID  uint
}

func newFakeStore(themes []models.Theme) *fakeStore {
	return &fakeStore{
		games:   make(map[uint]*models.Game),
		players: make(map[int64]*models.Player),
		themes:  themes,
	}
}

func copyGame(g *models.Game) *models.Game {
	cp := *g
	cp.AnsweredQuestions = append(models.QuestionIDs{}, g.AnsweredQuestions...)
	cp.Scores = append([]models.GameScore{}, g.Scores...)
	cp.Rounds = append([]models.Round{}, g.Rounds...)
	return &cp
}

func (s *fakeStore) GetActiveGame(chatID int64) (*models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found *models.Game
	for _, g := range s.games {
		if g.ChatID != chatID || g.Status == models.GameStatusFinished {
			continue
		}
		if found == nil || g.ID > found.ID {
			found = g
		}
	}
	if found == nil {
		return nil, nil
	}
	return copyGame(found), nil
}

func (s *fakeStore) GetGame(gameID uint) (*models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "game not found")
	}
	return copyGame(g), nil
}

func (s *fakeStore) GetLastGame(chatID int64) (*models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found *models.Game
	for _, g := range s.games {
		if g.ChatID != chatID {
			continue
		}
		if found == nil || g.ID > found.ID {
			found = g
		}
	}
	if found == nil {
		return nil, nil
	}
	return copyGame(found), nil
}

func (s *fakeStore) CreateGame(chatID int64) (*models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	g := &models.Game{
		ID:                s.nextID,
		ChatID:            chatID,
		Status:            models.GameStatusRegistration,
		AmountOfRounds:    1,
		CurrentRound:      1,
		AnsweredQuestions: models.QuestionIDs{},
	}
	s.games[g.ID] = g
	return copyGame(g), nil
}

func asInt(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case uint:
		return int(n)
	case int64:
		return int(n)
	}
	return 0
}

func (s *fakeStore) UpdateGame(gameID uint, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "game not found")
	}

	for key, value := range fields {
		switch key {
		case "status":
			g.Status = value.(string)
		case "amount_of_rounds":
			g.AmountOfRounds = asInt(value)
		case "current_round":
			g.CurrentRound = asInt(value)
		case "current_question":
			g.CurrentQuestion = uint(asInt(value))
		case "player_old":
			g.PlayerOld = int64(asInt(value))
		case "player_answering":
			g.PlayerAnswering = int64(asInt(value))
		case "answered_questions":
			ids := value.(models.QuestionIDs)
			g.AnsweredQuestions = append(models.QuestionIDs{}, ids...)
		case "finished_at":
			g.FinishedAt = value.(*time.Time)
		}
	}
	return nil
}

func (s *fakeStore) RegisterPlayer(player *models.Player, gameID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "game not found")
	}

	if _, ok := s.players[player.TgID]; !ok {
		cp := *player
		s.players[player.TgID] = &cp
	}

	for i := range g.Scores {
		if g.Scores[i].PlayerTgID == player.TgID {
			return nil
		}
	}
	g.Scores = append(g.Scores, models.GameScore{
		GameID:     gameID,
		PlayerTgID: player.TgID,
		Player:     *s.players[player.TgID],
	})
	return nil
}

func (s *fakeStore) UpdateScore(gameID uint, tgID int64, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "game not found")
	}

	for i := range g.Scores {
		if g.Scores[i].PlayerTgID != tgID {
			continue
		}
		for key, value := range fields {
			switch key {
			case "points":
				g.Scores[i].Points = asInt(value)
			case "correct_answers":
				g.Scores[i].CorrectAnswers = asInt(value)
			case "incorrect_answers":
				g.Scores[i].IncorrectAnswers = asInt(value)
			}
		}
		return nil
	}
	return errors.New(errors.ErrCodeNotFound, "score not found")
}

func (s *fakeStore) IncrementWinCount(tgID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.players[tgID]; ok {
		p.WinCounts++
	}
	return nil
}

func (s *fakeStore) CheckIfPlaying(gameID uint, tgID int64) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return nil, nil
	}
	for i := range g.Scores {
		if g.Scores[i].PlayerTgID == tgID {
			cp := g.Scores[i].Player
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) MaterializeRoundThemes(gameID uint, themesPerRound int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "game not found")
	}

	if themesPerRound > len(s.themes) {
		themesPerRound = len(s.themes)
	}

	g.Rounds = nil
	for n := 1; n <= g.AmountOfRounds; n++ {
		round := models.Round{GameID: gameID, Number: n}
		for i := 0; i < themesPerRound; i++ {
			round.Themes = append(round.Themes, models.RoundTheme{Theme: s.themes[i]})
		}
		g.Rounds = append(g.Rounds, round)
	}
	return nil
}

// winCount reads a player's accumulated wins.
func (s *fakeStore) winCount(tgID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.players[tgID]; ok {
		return p.WinCounts
	}
	return 0
}

// mustGame fetches the stored game directly for assertions.
func (s *fakeStore) mustGame(gameID uint) models.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *copyGame(s.games[gameID])
}

// fakeBank serves fixture questions and matches answers case-insensitively.
type fakeBank struct {
	questions map[uint]models.Question
}

func newFakeBank(themes []models.Theme) *fakeBank {
	b := &fakeBank{questions: make(map[uint]models.Question)}
	for _, t := range themes {
		for _, q := range t.Questions {
			b.questions[q.ID] = q
		}
	}
	return b
}

func (b *fakeBank) GetQuestion(id uint) (*models.Question, error) {
	q, ok := b.questions[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "question not found")
	}
	return &q, nil
}

func (b *fakeBank) MatchAnswer(given string, answers []models.Answer) bool {
	given = strings.ToLower(strings.TrimSpace(given))
	for _, a := range answers {
		if given == strings.ToLower(strings.TrimSpace(a.Title)) {
			return true
		}
	}
	return false
}

type sentMessage struct {
	chatID      int64
	text        string
	hasKeyboard bool
}

// fakeTransport records outbound traffic and hands out message ids.
type fakeTransport struct {
	mu        sync.Mutex
	sent      []sentMessage
	removed   []int
	nextMsgID int
}

func (t *fakeTransport) SendMessage(chatID int64, text string, keyboard interface{}) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sent = append(t.sent, sentMessage{chatID: chatID, text: text, hasKeyboard: keyboard != nil})
	t.nextMsgID++
	return t.nextMsgID
}

func (t *fakeTransport) RemoveKeyboard(chatID int64, messageID int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.removed = append(t.removed, messageID)
}

func (t *fakeTransport) sentCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sent)
}

func (t *fakeTransport) sentTexts() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	texts := make([]string, len(t.sent))
	for i, m := range t.sent {
		texts[i] = m.text
	}
	return texts
}

func (t *fakeTransport) containsText(substr string) bool {
	for _, text := range t.sentTexts() {
		if strings.Contains(text, substr) {
			return true
		}
	}
	return false
}

func sortedIDs(ids models.QuestionIDs) []uint {
	out := append([]uint{}, ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
