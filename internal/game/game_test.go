package game

import (
	"math/rand"
	"testing"

	"blockblast/internal/shapes"
	"blockblast/internal/state"
)

// fixedSource always draws the same template index.
type fixedSource int

func (f fixedSource) Intn(n int) int { return int(f) % n }

// scriptedSource returns its values in order, wrapping around.
type scriptedSource struct {
	values []int
	pos    int
}

func (s *scriptedSource) Intn(n int) int {
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v % n
}

func newTestGame(t *testing.T, opts state.Options) *Game {
	t.Helper()
	g, err := NewGame(opts)
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	return g
}

func TestGame_Init(t *testing.T) {
	g := newTestGame(t, state.Options{Source: rand.New(rand.NewSource(7))})

	if len(g.Board()) != 9 {
		t.Errorf("expected 9 rows, got %d", len(g.Board()))
	}
	if g.Score() != 0 {
		t.Errorf("expected score 0, got %d", g.Score())
	}
	if g.IsGameOver() {
		t.Error("new game should not be over")
	}
	if len(g.Queue()) != 3 || g.Cursor() != 0 {
		t.Errorf("expected queue of 3 at cursor 0, got %d at %d", len(g.Queue()), g.Cursor())
	}
	if g.CurrentShape().Name() != g.Queue()[0].Name() {
		t.Error("current shape should be the first queued shape")
	}
}

func TestGame_NewGameError(t *testing.T) {
	if _, err := NewGame(state.Options{BoardSize: 1}); err == nil {
		t.Error("expected error when default shapes cannot fit a 1x1 board")
	}
}

// TestGame_RowOfFour places a 1x4 bar across an empty 4x4 board.
func TestGame_RowOfFour(t *testing.T) {
	g := newTestGame(t, state.Options{
		BoardSize: 4,
		Templates: []shapes.Shape{shapes.MustShape("bar", "XXXX")},
		Source:    fixedSource(0),
	})

	res := g.AttemptPlacement(0, 0)

	if !res.Accepted {
		t.Fatal("placement should be accepted")
	}
	if res.LinesCleared != 1 {
		t.Errorf("expected 1 line cleared, got %d", res.LinesCleared)
	}
	if res.Score != 10 || g.Score() != 10 {
		t.Errorf("expected score 10, got %d", res.Score)
	}
	for c, cell := range g.Board()[0] {
		if cell.Filled {
			t.Errorf("row 0 col %d should be empty again", c)
		}
	}
	if res.GameOver {
		t.Error("game should not be over")
	}
}

// TestGame_SquareOutOfBounds anchors a 2x2 square at (3,3) on a 4x4 board.
func TestGame_SquareOutOfBounds(t *testing.T) {
	g := newTestGame(t, state.Options{
		BoardSize: 4,
		Templates: []shapes.Shape{shapes.MustShape("square", "XX\nXX")},
		Source:    fixedSource(0),
	})

	res := g.AttemptPlacement(3, 3)

	if res.Accepted {
		t.Fatal("placement should be rejected")
	}
	if res.Score != 0 || res.LinesCleared != 0 {
		t.Errorf("rejected placement should not score: %+v", res)
	}
	if g.Cursor() != 0 {
		t.Errorf("rejected placement should not move the cursor, got %d", g.Cursor())
	}
	for _, row := range g.Board() {
		for _, cell := range row {
			if cell.Filled {
				t.Fatal("board should be unchanged")
			}
		}
	}
}

func TestGame_SplitPlaceAndAdvance(t *testing.T) {
	g := newTestGame(t, state.Options{
		BoardSize: 4,
		Templates: []shapes.Shape{shapes.MustShape("bar", "XXXX")},
		Source:    fixedSource(0),
	})

	if !g.Place(2, 0) {
		t.Fatal("placement should be accepted")
	}
	// The placed piece is visible before the turn advances.
	for c, cell := range g.Board()[2] {
		if !cell.Filled {
			t.Errorf("row 2 col %d should be filled before advancing", c)
		}
	}

	res := g.AdvanceTurn()
	if res.LinesCleared != 1 || res.Score != 10 {
		t.Errorf("unexpected result %+v", res)
	}
	if g.Cursor() != 1 {
		t.Errorf("expected cursor 1, got %d", g.Cursor())
	}
}

func TestGame_QueueCycle(t *testing.T) {
	g := newTestGame(t, state.Options{
		BoardSize:   4,
		QueueLength: 3,
		Templates:   []shapes.Shape{shapes.MustShape("single", "X")},
		Source:      fixedSource(0),
	})

	for i := 0; i < 3; i++ {
		if g.Cursor() != i {
			t.Fatalf("expected cursor %d, got %d", i, g.Cursor())
		}
		if res := g.AttemptPlacement(i, i); !res.Accepted {
			t.Fatalf("placement %d rejected", i)
		}
	}
	if g.Cursor() != 0 {
		t.Errorf("expected cursor back at 0 after the queue is used up, got %d", g.Cursor())
	}
}

func TestGame_GameOverAndRestart(t *testing.T) {
	g := newTestGame(t, state.Options{
		BoardSize:   3,
		QueueLength: 1,
		Templates:   []shapes.Shape{shapes.MustShape("square", "XX\nXX")},
		Source:      fixedSource(0),
	})

	res := g.AttemptPlacement(0, 0)

	// No 2x2 hole is left on a 3x3 board once the corner is taken.
	if !res.Accepted || !res.GameOver {
		t.Fatalf("expected accepted placement ending the game, got %+v", res)
	}
	if !g.IsGameOver() {
		t.Fatal("expected game over")
	}

	func() {
		defer func() {
			if recover() == nil {
				t.Error("placing after game over should panic")
			}
		}()
		g.AttemptPlacement(2, 2)
	}()

	same := g.Restart()
	if same != g {
		t.Error("Restart should return the same game")
	}
	if g.IsGameOver() || g.Score() != 0 || g.Cursor() != 0 {
		t.Errorf("restart did not reset: over=%v score=%d cursor=%d", g.IsGameOver(), g.Score(), g.Cursor())
	}
	for _, row := range g.Board() {
		for _, cell := range row {
			if cell.Filled {
				t.Fatal("expected an empty board after restart")
			}
		}
	}
}

func TestGame_Subscribe(t *testing.T) {
	g := newTestGame(t, state.Options{
		BoardSize: 4,
		Templates: []shapes.Shape{shapes.MustShape("bar", "XXXX")},
		Source:    fixedSource(0),
	})
	var lines int
	g.Subscribe(state.ObserverFuncs{LinesCleared: func(c state.Cleared) { lines += c.Lines }})

	g.AttemptPlacement(0, 0)
	g.AttemptPlacement(3, 0)

	if lines != 2 {
		t.Errorf("expected 2 lines reported, got %d", lines)
	}
}
