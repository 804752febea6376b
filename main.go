package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"blockblast/internal/game"
	"blockblast/internal/shapes"
	"blockblast/internal/state"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	emptyColor   = "#334455"
	ghostColor   = "#7f8c8d"
	blockedColor = "#c0392b"
)

var (
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // game over, rejected moves
	greenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // line clears
	scoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // status line
	boldStyle   = lipgloss.NewStyle().Bold(true)
	boardStyle  = lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(0, 1)
	slotStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	activeStyle = slotStyle.BorderForeground(lipgloss.Color("11"))
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Place   key.Binding
	Restart key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Place, k.Restart, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Left, k.Right}, {k.Place, k.Restart, k.Quit}}
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	Place:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "place")),
	Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

type LocalState struct {
	Session   *game.Session
	Row, Col  int // anchor of the current shape
	Delay     time.Duration
	Message   string
	Advancing bool // a piece is committed and waiting for its turn-advance

	help help.Model
}

// AdvanceMsg fires once the placement delay has passed.
type AdvanceMsg struct{}

func advanceCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return AdvanceMsg{}
	})
}

func initialModel(opts state.Options, delay time.Duration) (*LocalState, error) {
	sess, err := game.NewSession(opts)
	if err != nil {
		return nil, err
	}

	s := &LocalState{
		Session: sess,
		Delay:   delay,
		help:    help.New(),
	}

	sess.CurrentGame.Subscribe(state.ObserverFuncs{
		Placed: func(p state.Placed) {
			log.Printf("placed %s at (%d,%d) from slot %d", p.Shape.Name(), p.Row, p.Col, p.Slot)
		},
		LinesCleared: func(c state.Cleared) {
			log.Printf("cleared rows %v cols %v for %d points", c.Rows, c.Cols, c.Points)
			s.Message = greenStyle.Render(fmt.Sprintf("+%d  %s!", c.Points, plural(c.Lines, "line")))
		},
	})

	s.center()
	return s, nil
}

func (s *LocalState) Init() tea.Cmd {
	return nil
}

func (s *LocalState) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	g := s.Session.CurrentGame

	switch msg := msg.(type) {
	case AdvanceMsg:
		if !s.Advancing {
			return s, nil
		}
		s.Advancing = false
		res := g.AdvanceTurn()
		s.Session.Update()
		if res.GameOver {
			s.Message = redStyle.Render(fmt.Sprintf("Game over! Final score: %d", res.Score))
		}
		s.clamp()
	case tea.WindowSizeMsg:
		s.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return s, tea.Quit
		case key.Matches(msg, keys.Restart):
			s.Session.Restart()
			s.Advancing = false
			s.Message = ""
			s.center()
			return s, nil
		}

		// Input is frozen while a placement animates and after game over.
		if s.Advancing || !g.State.IsPlaying() {
			return s, nil
		}

		switch {
		case key.Matches(msg, keys.Up):
			s.Row--
		case key.Matches(msg, keys.Down):
			s.Row++
		case key.Matches(msg, keys.Left):
			s.Col--
		case key.Matches(msg, keys.Right):
			s.Col++
		case key.Matches(msg, keys.Place):
			if !g.Place(s.Row, s.Col) {
				s.Message = redStyle.Render("That piece doesn't fit there.")
				return s, nil
			}
			s.Message = ""
			s.Advancing = true
			return s, advanceCmd(s.Delay)
		}
		s.clamp()
	}

	return s, nil
}

// clamp keeps the current shape's bounding box on the board.
func (s *LocalState) clamp() {
	g := s.Session.CurrentGame
	n := len(g.Board())
	shape := g.CurrentShape()
	s.Row = max(0, min(s.Row, n-shape.Rows()))
	s.Col = max(0, min(s.Col, n-shape.Cols()))
}

func (s *LocalState) center() {
	n := len(s.Session.CurrentGame.Board())
	s.Row, s.Col = n/2, n/2
	s.clamp()
}

func cellBlock(color string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(color)).Render("  ")
}

func (s *LocalState) RenderBoard() string {
	g := s.Session.CurrentGame
	cells := g.Board()

	// Preview the current shape at the anchor unless it is already placed.
	ghost := map[[2]int]bool{}
	legal := false
	if !s.Advancing && !g.IsGameOver() {
		shape := g.CurrentShape()
		legal = g.State.CanPlace(s.Row, s.Col)
		for _, off := range shape.Offsets() {
			ghost[[2]int{s.Row + off.Row, s.Col + off.Col}] = true
		}
	}

	var b strings.Builder
	for r, row := range cells {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c, cell := range row {
			switch {
			case ghost[[2]int{r, c}] && legal:
				b.WriteString(cellBlock(ghostColor))
			case ghost[[2]int{r, c}]:
				b.WriteString(cellBlock(blockedColor))
			case cell.Filled:
				b.WriteString(cellBlock(cell.Color))
			default:
				b.WriteString(cellBlock(emptyColor))
			}
		}
	}
	return b.String()
}

func renderShape(shape shapes.Shape, color string) string {
	var b strings.Builder
	for r := 0; r < shape.Rows(); r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := 0; c < shape.Cols(); c++ {
			if shape.Filled(r, c) {
				b.WriteString(cellBlock(color))
			} else {
				b.WriteString("  ")
			}
		}
	}
	return b.String()
}

func (s *LocalState) RenderQueue() string {
	g := s.Session.CurrentGame
	color := g.State.Options.Color

	var slots []string
	for i, shape := range g.Queue() {
		style := slotStyle
		if i == g.Cursor() && !g.IsGameOver() {
			style = activeStyle
		}
		if i < g.Cursor() {
			slots = append(slots, style.Render(strings.Repeat(" ", 2*shape.Cols())))
			continue
		}
		slots = append(slots, style.Render(renderShape(shape, color)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, slots...)
}

func (s *LocalState) View() string {
	g := s.Session.CurrentGame

	title := boldStyle.Render("BLOCK BLAST")
	body := lipgloss.JoinHorizontal(lipgloss.Top, boardStyle.Render(s.RenderBoard()), " ", s.RenderQueue())

	statusLine := "SCORE: " + fmt.Sprint(g.Score()) + " | " +
		"BEST: " + fmt.Sprint(max(s.Session.BestScore, g.Score())) + " | " +
		"GAME: " + fmt.Sprint(s.Session.GamesPlayed)
	stats := g.State.Stats()
	statusLine += fmt.Sprintf(" | LINES: %d | PIECES: %d | BEST CLEAR: %d", stats.LinesCleared, stats.Placements, stats.BestClear)

	display := title + "\n" + body + "\n" + scoreStyle.Render(statusLine) + "\n"

	switch {
	case s.Message != "":
		display += "\n" + s.Message
	case !g.IsGameOver() && !s.Advancing && !g.State.CurrentShapeFits():
		display += "\n" + redStyle.Render("No room for this piece. Press r to restart.")
	}
	if g.IsGameOver() && s.Session.IsNewBest() {
		display += "\n" + greenStyle.Render("New best score!")
	}

	return display + "\n\n" + s.help.View(keys)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

type positiveIntFlag int

func (i *positiveIntFlag) String() string {
	return fmt.Sprint(int(*i))
}

func (i *positiveIntFlag) Set(s string) error {
	if s == "true" {
		return fmt.Errorf("value required (format: -flag=value)")
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if v < 1 {
		return fmt.Errorf("must be at least 1, got %d", v)
	}
	*i = positiveIntFlag(v)
	return nil
}

func (i *positiveIntFlag) IsBoolFlag() bool { return true }

func buildOptions(size, queue int, seed int64, shapePaths string) (state.Options, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("seed %d", seed)

	opts := state.Options{
		BoardSize:   size,
		QueueLength: queue,
		Color:       state.DefaultColor,
		Source:      rand.New(rand.NewSource(seed)),
	}

	if shapePaths != "" {
		templates, err := shapes.LoadTemplates(strings.Split(shapePaths, ",")...)
		if err != nil {
			return opts, err
		}
		if len(templates) == 0 {
			return opts, fmt.Errorf("no shapes found in %s", shapePaths)
		}
		opts.Templates = templates
	}
	return opts, nil
}

func main() {
	size := positiveIntFlag(state.DefaultBoardSize)
	queue := positiveIntFlag(state.DefaultQueueLength)
	var seed int64
	var delay time.Duration
	var shapePaths string
	var logPath string

	flag.Var(&size, "size", "Board size N (N x N cells)")
	flag.Var(&size, "n", "Board size (shorthand)")
	flag.Var(&queue, "queue", "Number of pieces per queue")
	flag.Var(&queue, "q", "Number of pieces per queue (shorthand)")
	flag.Int64Var(&seed, "seed", 0, "Random seed (0 picks one from the clock)")
	flag.DurationVar(&delay, "delay", 150*time.Millisecond, "Pause between placing a piece and clearing lines")
	flag.StringVar(&shapePaths, "shapes", "", "Comma-separated shape files or directories replacing the default pieces")
	flag.StringVar(&logPath, "log", "", "Write a debug log to this file")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		fmt.Fprintf(os.Stderr, "   -n, --size=N        Board size (default %d)\n", state.DefaultBoardSize)
		fmt.Fprintf(os.Stderr, "   -q, --queue=N       Pieces per queue (default %d)\n", state.DefaultQueueLength)
		fmt.Fprintf(os.Stderr, "       --seed=N        Random seed\n")
		fmt.Fprintf(os.Stderr, "       --delay=DUR     Placement delay, e.g. 150ms\n")
		fmt.Fprintf(os.Stderr, "       --shapes=PATHS  Custom shape files or directories\n")
		fmt.Fprintf(os.Stderr, "       --log=FILE      Write a debug log\n")
		fmt.Fprintf(os.Stderr, "   -h, --help          Show this help message\n")
	}

	flag.Parse()

	if logPath != "" {
		f, err := tea.LogToFile(logPath, "blockblast")
		if err != nil {
			fmt.Printf("Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	opts, err := buildOptions(int(size), int(queue), seed, shapePaths)
	if err != nil {
		fmt.Printf("Error loading shapes: %v\n", err)
		os.Exit(1)
	}

	model, err := initialModel(opts, delay)
	if err != nil {
		fmt.Printf("Error initializing model: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error starting the program: %v\n", err)
	}

	model.Session.Update()
	fmt.Printf("Final score: %d | Best this session: %d\n", model.Session.CurrentGame.Score(), max(model.Session.BestScore, model.Session.CurrentGame.Score()))
}
