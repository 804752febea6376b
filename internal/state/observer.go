package state

import "blockblast/internal/shapes"

// Placed is emitted when a piece is committed to the board.
type Placed struct {
	Shape    shapes.Shape
	Row, Col int
	Slot     int // queue index the piece came from
}

// Cleared is emitted when a turn-advance clears at least one line.
type Cleared struct {
	Rows   []int
	Cols   []int
	Lines  int
	Points int
	Score  int // total after this clear
}

// Observer receives advisory notifications, e.g. for sound or effects. They
// are delivered synchronously; the engine never reads anything back.
type Observer interface {
	OnPlaced(Placed)
	OnLinesCleared(Cleared)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	Placed       func(Placed)
	LinesCleared func(Cleared)
}

func (o ObserverFuncs) OnPlaced(p Placed) {
	if o.Placed != nil {
		o.Placed(p)
	}
}

func (o ObserverFuncs) OnLinesCleared(c Cleared) {
	if o.LinesCleared != nil {
		o.LinesCleared(c)
	}
}

// Subscribe registers o for placement and clear notifications.
func (s *State) Subscribe(o Observer) {
	s.observers = append(s.observers, o)
}

func (s *State) notifyPlaced(p Placed) {
	for _, o := range s.observers {
		o.OnPlaced(p)
	}
}

func (s *State) notifyCleared(c Cleared) {
	for _, o := range s.observers {
		o.OnLinesCleared(c)
	}
}
