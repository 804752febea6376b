package state

import (
	"blockblast/internal/board"
	"blockblast/internal/scoring"
	"blockblast/internal/shapes"
)

// Phase returns the current phase of the turn machine.
func (s *State) Phase() string {
	return s.FSM.Current()
}

func (s *State) IsPlaying() bool { return s.FSM.Is(Playing) }

func (s *State) IsPending() bool { return s.FSM.Is(Pending) }

func (s *State) IsGameOver() bool { return s.FSM.Is(GameOver) }

// CurrentShape is the shape at the queue cursor.
func (s *State) CurrentShape() shapes.Shape {
	return s.queue[s.cursor]
}

// CurrentShapeFits reports whether the current shape has any legal anchor.
// A false result mid-queue does not end the game; only the queue boundary
// does.
func (s *State) CurrentShapeFits() bool {
	return s.board.FitsAnywhere(s.CurrentShape())
}

// CanPlace reports whether the current shape may go at (row, col) without
// changing anything.
func (s *State) CanPlace(row, col int) bool {
	return s.board.IsLegalPlacement(s.CurrentShape(), row, col)
}

// Queue returns a copy of the piece queue.
func (s *State) Queue() []shapes.Shape {
	out := make([]shapes.Shape, len(s.queue))
	copy(out, s.queue)
	return out
}

func (s *State) Cursor() int { return s.cursor }

// Board returns a snapshot of the grid.
func (s *State) Board() [][]board.Cell {
	return s.board.Cells()
}

func (s *State) BoardSize() int { return s.board.Size() }

func (s *State) Score() int { return s.score.CurrentScore }

// Stats returns a copy of the score counters.
func (s *State) Stats() scoring.Scoring {
	return *s.score
}
