package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/ndemidov/trivia_bot/internal/config"
	"github.com/ndemidov/trivia_bot/internal/repositories"
	"gorm.io/gorm"
)

// Server is the admin HTTP API that runs alongside the bot. It exposes
// read access to game state and CRUD for the question bank.
type Server struct {
	config *config.Config
	games  *repositories.GameRepository
	quiz   *repositories.QuizRepository
	server *http.Server
}

func NewServer(cfg *config.Config, db *gorm.DB) *Server {
	s := &Server{
		config: cfg,
		games:  repositories.NewGameRepository(db),
		quiz:   repositories.NewQuizRepository(db),
	}

	r := mux.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(accessLogMiddleware)

	r.HandleFunc("/admin/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/games/active", s.handleActiveGame).Methods(http.MethodGet)

	admin := r.NewRoute().Subrouter()
	admin.Use(s.authMiddleware)
	admin.HandleFunc("/games", s.handleListGames).Methods(http.MethodGet)
	admin.HandleFunc("/games/{id:[0-9]+}", s.handleGetGame).Methods(http.MethodGet)
	admin.HandleFunc("/themes", s.handleListThemes).Methods(http.MethodGet)
	admin.HandleFunc("/themes", s.handleCreateTheme).Methods(http.MethodPost)
	admin.HandleFunc("/questions", s.handleListQuestions).Methods(http.MethodGet)
	admin.HandleFunc("/questions", s.handleCreateQuestion).Methods(http.MethodPost)

	s.server = &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return s
}

func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
