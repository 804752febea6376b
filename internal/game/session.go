package game

import (
	"log"

	"blockblast/internal/state"
)

// Session is a run of consecutive games in one process. It keeps the best
// score across restarts in memory only.
type Session struct {
	CurrentGame *Game
	Options     state.Options

	GamesPlayed int
	BestScore   int
	recorded    bool // current game's score already folded into BestScore
}

func NewSession(opts state.Options) (*Session, error) {
	g, err := NewGame(opts)
	if err != nil {
		return nil, err
	}
	return &Session{CurrentGame: g, Options: opts, GamesPlayed: 1}, nil
}

// Update records the final score once the current game is over.
func (s *Session) Update() {
	if s.CurrentGame == nil || s.recorded || !s.CurrentGame.IsGameOver() {
		return
	}
	s.record()
}

// Restart folds the current score into BestScore and starts a new game.
func (s *Session) Restart() {
	if !s.recorded {
		s.record()
	}
	s.CurrentGame.Restart()
	s.GamesPlayed++
	s.recorded = false
}

func (s *Session) record() {
	score := s.CurrentGame.Score()
	if score > s.BestScore {
		s.BestScore = score
		log.Printf("new best score %d in game %d", score, s.GamesPlayed)
	}
	s.recorded = true
}

// IsNewBest reports whether the current game has matched or beaten every
// earlier game of the session.
func (s *Session) IsNewBest() bool {
	return s.CurrentGame.Score() > 0 && s.CurrentGame.Score() >= s.BestScore
}
