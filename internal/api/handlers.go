package api

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/ndemidov/trivia_bot/internal/security"
	apperrors "github.com/ndemidov/trivia_bot/pkg/errors"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{"data": data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{"error": message})
}

func respondRepoError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case apperrors.ErrCodeNotFound:
			respondError(w, http.StatusNotFound, appErr.Message)
			return
		case apperrors.ErrCodeValidation:
			respondError(w, http.StatusBadRequest, appErr.Message)
			return
		case apperrors.ErrCodeAlreadyExists:
			respondError(w, http.StatusConflict, appErr.Message)
			return
		}
	}
	respondError(w, http.StatusInternalServerError, "internal error")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if s.config.AdminEmail == "" ||
		subtle.ConstantTimeCompare([]byte(req.Email), []byte(s.config.AdminEmail)) != 1 ||
		subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.config.AdminPassword)) != 1 {
		respondError(w, http.StatusForbidden, "invalid credentials")
		return
	}

	token, err := security.GenerateJWT(req.Email, s.config.JWTSecret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleActiveGame(w http.ResponseWriter, r *http.Request) {
	chatID, err := strconv.ParseInt(r.URL.Query().Get("chat_id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "chat_id is required")
		return
	}

	game, err := s.games.GetActiveGame(chatID)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	if game == nil {
		respondError(w, http.StatusNotFound, "no active game in this chat")
		return
	}

	respondJSON(w, http.StatusOK, game)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	game, err := s.games.GetGame(uint(id))
	if err != nil {
		respondRepoError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, game)
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	games, err := s.games.ListGames(page, pageSize)
	if err != nil {
		respondRepoError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, games)
}

func (s *Server) handleListThemes(w http.ResponseWriter, r *http.Request) {
	themes, err := s.quiz.ListThemes()
	if err != nil {
		respondRepoError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, themes)
}

type createThemeRequest struct {
	Title string `json:"title"`
}

func (s *Server) handleCreateTheme(w http.ResponseWriter, r *http.Request) {
	var req createThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	title := security.SanitizeText(req.Title)
	if title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	theme, err := s.quiz.CreateTheme(title)
	if err != nil {
		respondRepoError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, theme)
}

func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	var themeID uint
	if raw := r.URL.Query().Get("theme_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid theme_id")
			return
		}
		themeID = uint(parsed)
	}

	questions, err := s.quiz.ListQuestions(themeID)
	if err != nil {
		respondRepoError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, questions)
}

type createQuestionRequest struct {
	ThemeID uint     `json:"theme_id"`
	Title   string   `json:"title"`
	Points  int      `json:"points"`
	Answers []string `json:"answers"`
}

func (s *Server) handleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req createQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	title := security.SanitizeText(req.Title)
	if title == "" || req.ThemeID == 0 {
		respondError(w, http.StatusBadRequest, "theme_id and title are required")
		return
	}

	answers := make([]string, 0, len(req.Answers))
	for _, a := range req.Answers {
		if clean := security.SanitizeText(a); clean != "" {
			answers = append(answers, clean)
		}
	}
	if len(answers) == 0 {
		respondError(w, http.StatusBadRequest, "at least one answer is required")
		return
	}

	question, err := s.quiz.CreateQuestion(req.ThemeID, title, req.Points, answers)
	if err != nil {
		respondRepoError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, question)
}
