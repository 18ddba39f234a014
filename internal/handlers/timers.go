package handlers

import (
	"sync"
	"time"
)

type timerKind int

const (
	timerKindAnswer timerKind = iota
	timerKindGame
	timerKindJoin
)

type timerKey struct {
	gameID uint
	kind   timerKind
}

// Scheduler keeps the outstanding timers of all games keyed by
// (game id, kind). Arming a key stops the timer it supersedes, and a
// finished game cancels everything it still owns. Callbacks must still
// re-load the game and re-validate before acting: a callback that already
// started running when its key was cancelled fires anyway, and treating a
// stale fire as a no-op is what makes that race harmless.
type Scheduler struct {
	mu     sync.Mutex
	timers map[timerKey]*time.Timer
}

func NewScheduler() *Scheduler {
	return &Scheduler{timers: make(map[timerKey]*time.Timer)}
}

func (s *Scheduler) Schedule(gameID uint, kind timerKind, d time.Duration, fn func()) {
	key := timerKey{gameID: gameID, kind: kind}

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.timers[key]; ok {
		old.Stop()
	}
	s.timers[key] = time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.timers, key)
		s.mu.Unlock()
		fn()
	})
}

func (s *Scheduler) Cancel(gameID uint, kind timerKind) {
	key := timerKey{gameID: gameID, kind: kind}

	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[key]; ok {
		timer.Stop()
		delete(s.timers, key)
	}
}

// CancelGame stops every timer still armed for the game.
func (s *Scheduler) CancelGame(gameID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, timer := range s.timers {
		if key.gameID == gameID {
			timer.Stop()
			delete(s.timers, key)
		}
	}
}

// Stop cancels all timers on shutdown.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, timer := range s.timers {
		timer.Stop()
		delete(s.timers, key)
	}
}
