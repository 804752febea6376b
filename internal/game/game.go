package game

import (
	"blockblast/internal/board"
	"blockblast/internal/shapes"
	"blockblast/internal/state"
)

// Game is the engine surface a presentation layer talks to. It holds no UI
// state; callers render from the snapshot accessors after each call.
type Game struct {
	State *state.State
}

// PlacementResult is the outcome of a placement attempt.
type PlacementResult struct {
	Accepted     bool
	LinesCleared int
	Score        int
	GameOver     bool
}

// NewGame starts a game with an empty board, a fresh queue and score 0.
func NewGame(opts state.Options) (*Game, error) {
	s, err := state.NewState(opts)
	if err != nil {
		return nil, err
	}
	return &Game{State: s}, nil
}

// CurrentShape is the piece the player is moving.
func (g *Game) CurrentShape() shapes.Shape {
	return g.State.CurrentShape()
}

// AttemptPlacement places the current shape at (row, col) and, if accepted,
// runs the turn-advance immediately.
func (g *Game) AttemptPlacement(row, col int) PlacementResult {
	if !g.Place(row, col) {
		return g.rejected()
	}
	return g.AdvanceTurn()
}

// Place commits the current shape without advancing the turn. Use it with
// AdvanceTurn when the caller wants to show the piece before lines clear.
func (g *Game) Place(row, col int) bool {
	return g.State.Place(row, col)
}

// AdvanceTurn finishes an accepted placement.
func (g *Game) AdvanceTurn() PlacementResult {
	turn := g.State.AdvanceTurn()
	return PlacementResult{
		Accepted:     true,
		LinesCleared: turn.LinesCleared(),
		Score:        turn.Score,
		GameOver:     turn.GameOver,
	}
}

// Restart reinitializes the game in place and returns it.
func (g *Game) Restart() *Game {
	g.State.Reset()
	return g
}

func (g *Game) rejected() PlacementResult {
	return PlacementResult{
		Score:    g.State.Score(),
		GameOver: g.State.IsGameOver(),
	}
}

func (g *Game) Board() [][]board.Cell { return g.State.Board() }

func (g *Game) Score() int { return g.State.Score() }

func (g *Game) IsGameOver() bool { return g.State.IsGameOver() }

func (g *Game) Queue() []shapes.Shape { return g.State.Queue() }

func (g *Game) Cursor() int { return g.State.Cursor() }

// Subscribe registers an observer for placement and clear notifications.
func (g *Game) Subscribe(o state.Observer) { g.State.Subscribe(o) }
