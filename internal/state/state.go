package state

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"blockblast/internal/board"
	"blockblast/internal/scoring"
	"blockblast/internal/shapes"

	"github.com/looplab/fsm"
)

// Phases of the turn machine.
const (
	Start    = "start"
	Playing  = "playing"
	Pending  = "pending" // a piece was committed, turn-advance not yet run
	GameOver = "gameOver"
)

const (
	DefaultBoardSize   = 9
	DefaultQueueLength = 3
	DefaultColor       = "#f39c12"
)

var ErrShapeTooLarge = errors.New("shape does not fit on the board")

type Options struct {
	BoardSize   int    // 0 means DefaultBoardSize
	QueueLength int    // 0 means DefaultQueueLength
	Color       string // token written into every placed cell
	Source      shapes.Source
	Templates   []shapes.Shape // empty means shapes.DefaultTemplates
}

func (o Options) withDefaults() Options {
	if o.BoardSize == 0 {
		o.BoardSize = DefaultBoardSize
	}
	if o.QueueLength == 0 {
		o.QueueLength = DefaultQueueLength
	}
	if o.Color == "" {
		o.Color = DefaultColor
	}
	if o.Source == nil {
		o.Source = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return o
}

// State owns the board, the piece queue and the score of one game, and moves
// them through the turn machine. It is not safe for concurrent use.
type State struct {
	FSM     *fsm.FSM
	Options Options

	board     *board.Board
	queue     []shapes.Shape
	cursor    int
	score     *scoring.Scoring
	catalog   *shapes.Catalog
	observers []Observer
	last      Placed
}

// Turn is the outcome of a turn-advance.
type Turn struct {
	Clear    board.Clear
	Points   int
	Score    int
	Refilled bool // the queue was exhausted and redrawn
	GameOver bool
}

func (t Turn) LinesCleared() int { return t.Clear.Lines() }

// NewState validates opts and starts a fresh game.
func NewState(opts Options) (*State, error) {
	opts = opts.withDefaults()
	if opts.BoardSize < 1 {
		return nil, fmt.Errorf("invalid board size %d", opts.BoardSize)
	}
	if opts.QueueLength < 1 {
		return nil, fmt.Errorf("invalid queue length %d", opts.QueueLength)
	}

	catalog, err := shapes.NewCatalog(opts.Source, opts.Templates...)
	if err != nil {
		return nil, fmt.Errorf("could not build shape catalog: %w", err)
	}
	for _, t := range catalog.Templates() {
		if t.Rows() > opts.BoardSize || t.Cols() > opts.BoardSize {
			return nil, fmt.Errorf("shape %q is %dx%d on a %dx%d board: %w",
				t.Name(), t.Rows(), t.Cols(), opts.BoardSize, opts.BoardSize, ErrShapeTooLarge)
		}
	}

	s := &State{Options: opts, catalog: catalog, score: scoring.InitScoring()}
	s.Reset()
	return s, nil
}

// Reset discards the current game and starts a new one: empty board, fresh
// queue, zero score. Observers stay subscribed.
func (s *State) Reset() {
	s.board = board.New(s.Options.BoardSize)
	s.queue = s.catalog.DrawQueue(s.Options.QueueLength)
	s.cursor = 0
	s.score.Reset()
	s.last = Placed{}

	s.FSM = fsm.NewFSM(
		Start,
		getStateTransitions(),
		getStateCallbacks(s),
	)
	s.event("initGame")

	log.Printf("new game: %dx%d board, queue of %d", s.Options.BoardSize, s.Options.BoardSize, s.Options.QueueLength)
}

// Place commits the current shape with its origin at (row, col) if the
// placement is legal. A rejected placement changes nothing. Calling Place
// outside the playing phase is a caller bug and panics.
func (s *State) Place(row, col int) bool {
	if !s.FSM.Is(Playing) {
		panic(fmt.Sprintf("state: placement attempted in phase %q", s.FSM.Current()))
	}

	shape := s.CurrentShape()
	if !s.board.IsLegalPlacement(shape, row, col) {
		return false
	}

	s.board.Commit(shape, row, col, s.Options.Color)
	s.score.ScoreEvent("placement")
	s.last = Placed{Shape: shape, Row: row, Col: col, Slot: s.cursor}
	s.event("place")
	return true
}

// AdvanceTurn runs the turn-advance after an accepted placement: clear full
// lines, score them, then move the cursor or, when the last slot was used,
// redraw the queue and check whether any new piece fits. Game over is only
// decided at that queue boundary. Calling AdvanceTurn without a pending
// placement panics.
func (s *State) AdvanceTurn() Turn {
	if !s.FSM.Is(Pending) {
		panic(fmt.Sprintf("state: turn-advance attempted in phase %q", s.FSM.Current()))
	}

	cleared := s.board.ClearFullLines()
	turn := Turn{Clear: cleared, Points: s.score.AddLines(cleared.Lines())}
	if cleared.Lines() > 0 {
		s.notifyCleared(Cleared{
			Rows:   cleared.Rows,
			Cols:   cleared.Cols,
			Lines:  cleared.Lines(),
			Points: turn.Points,
			Score:  s.score.CurrentScore,
		})
	}

	if s.cursor == len(s.queue)-1 {
		s.queue = s.catalog.DrawQueue(s.Options.QueueLength)
		s.cursor = 0
		turn.Refilled = true
		if s.board.HasAnyLegalPlacement(s.queue) {
			s.event("advance")
		} else {
			s.event("gameEnd")
		}
	} else {
		s.cursor++
		s.event("advance")
	}

	turn.Score = s.score.CurrentScore
	turn.GameOver = s.IsGameOver()
	return turn
}

func (s *State) event(name string) {
	if err := s.FSM.Event(context.Background(), name); err != nil {
		panic(fmt.Sprintf("state: event %q from %q: %v", name, s.FSM.Current(), err))
	}
}

func getStateTransitions() []fsm.EventDesc {
	return fsm.Events{
		{Name: "initGame", Src: []string{Start}, Dst: Playing},
		{Name: "place", Src: []string{Playing}, Dst: Pending},
		{Name: "advance", Src: []string{Pending}, Dst: Playing},
		{Name: "gameEnd", Src: []string{Pending}, Dst: GameOver},
	}
}

func getStateCallbacks(s *State) map[string]fsm.Callback {
	return fsm.Callbacks{
		"enter_" + Pending: func(_ context.Context, _ *fsm.Event) {
			s.notifyPlaced(s.last)
		},
		"enter_" + GameOver: func(_ context.Context, _ *fsm.Event) {
			log.Printf("game over: score %d, %d placements, %d lines",
				s.score.CurrentScore, s.score.Placements, s.score.LinesCleared)
		},
	}
}
