package scoring

import "fmt"

// Scoring tracks the score of a single game. Points only come from cleared
// lines; rows and columns count separately.
type Scoring struct {
	CurrentScore int
	LinesCleared int
	Placements   int
	BestClear    int // most lines cleared by a single placement
	scoreTable   map[string]int
}

// InitScoring creates a Scoring with a zero score.
func InitScoring() *Scoring {
	return &Scoring{scoreTable: getScoreTable()}
}

// Points returns the score for clearing lines lines at once.
func Points(lines int) int {
	if lines < 0 {
		panic(fmt.Sprintf("scoring: negative line count %d", lines))
	}
	return lines * getScoreTable()["line"]
}

// ScoreEvent updates the counters and score for a single game event.
func (s *Scoring) ScoreEvent(event string) {
	if s.scoreTable == nil {
		s.scoreTable = getScoreTable()
	}
	switch event {
	case "placement":
		s.Placements++
	case "line":
		s.LinesCleared++
	}
	s.CurrentScore += s.scoreTable[event]
}

// AddLines scores a clear of n lines and returns the points gained.
func (s *Scoring) AddLines(n int) int {
	gained := Points(n)
	for i := 0; i < n; i++ {
		s.ScoreEvent("line")
	}
	if n > s.BestClear {
		s.BestClear = n
	}
	return gained
}

// Reset zeroes the score and counters.
func (s *Scoring) Reset() {
	*s = Scoring{scoreTable: getScoreTable()}
}

// getScoreTable returns the point value of each scoring event.
func getScoreTable() map[string]int {
	return map[string]int{
		"line":      10,
		"placement": 0,
	}
}
