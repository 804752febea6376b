package shapes

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted returns its values in order, wrapping around.
type scripted struct {
	values []int
	pos    int
	calls  []int
}

func (s *scripted) Intn(n int) int {
	s.calls = append(s.calls, n)
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v % n
}

func TestParseShape(t *testing.T) {
	s, err := ParseShape("corner", "X.\nXX")
	require.NoError(t, err)

	assert.Equal(t, "corner", s.Name())
	assert.Equal(t, 2, s.Rows())
	assert.Equal(t, 2, s.Cols())
	assert.True(t, s.Filled(0, 0))
	assert.False(t, s.Filled(0, 1))
	assert.True(t, s.Filled(1, 1))
	assert.Equal(t, 3, s.Cells())
	assert.Equal(t, []Offset{{0, 0}, {1, 0}, {1, 1}}, s.Offsets())
	assert.Equal(t, "X.\nXX", s.String())
}

func TestParseShape_PadsShortRows(t *testing.T) {
	s, err := ParseShape("tee", "XXX\n.X")
	require.NoError(t, err)
	assert.Equal(t, 3, s.Cols())
	assert.False(t, s.Filled(1, 2))
}

func TestParseShape_TrimsEmptyBorders(t *testing.T) {
	tests := []struct {
		name    string
		drawing string
		want    string
	}{
		{"leading column", ".X", "X"},
		{"leading row", "\n..\nX.", "X"},
		{"framed", "...\n.XX\n.X.\n...", "XX\nX."},
		{"inner gap kept", "X.X", "X.X"},
		{"lowercase and hash", ".x\n#.", ".X\nX."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseShape(tt.name, tt.drawing)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.String())
			assert.Equal(t, 0, s.Offsets()[0].Row, "origin row must hold a filled cell")

			inFirstCol := false
			for _, off := range s.Offsets() {
				inFirstCol = inFirstCol || off.Col == 0
			}
			assert.True(t, inFirstCol, "origin column must hold a filled cell")
		})
	}
}

func TestNewShape_TrimsEmptyBorders(t *testing.T) {
	s, err := NewShape("notch", [][]bool{{false, false}, {false, true}})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Rows())
	assert.Equal(t, 1, s.Cols())
	assert.True(t, s.Filled(0, 0))
}

func TestParseShape_Errors(t *testing.T) {
	tests := []struct {
		name    string
		drawing string
		target  error
	}{
		{"all empty", "..\n..", ErrEmptyShape},
		{"blank", "", ErrEmptyShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseShape(tt.name, tt.drawing)
			assert.ErrorIs(t, err, tt.target)
		})
	}

	_, err := ParseShape("bad", "X?")
	assert.Error(t, err)
}

func TestNewShape_Ragged(t *testing.T) {
	_, err := NewShape("ragged", [][]bool{{true, true}, {true}})
	assert.ErrorIs(t, err, ErrRaggedShape)
}

func TestNewShape_CopiesInput(t *testing.T) {
	rows := [][]bool{{true, false}}
	s, err := NewShape("copy", rows)
	require.NoError(t, err)

	rows[0][1] = true
	assert.False(t, s.Filled(0, 1), "shape must not alias caller memory")
}

func TestFilled_OutOfRange(t *testing.T) {
	s := MustShape("single", "X")
	assert.False(t, s.Filled(-1, 0))
	assert.False(t, s.Filled(0, 1))
	assert.False(t, s.Filled(1, 0))
}

func TestDefaultTemplates(t *testing.T) {
	templates := DefaultTemplates()
	require.Len(t, templates, 8)

	names := map[string]bool{}
	for _, tmpl := range templates {
		names[tmpl.Name()] = true
		assert.LessOrEqual(t, tmpl.Rows(), 3)
		assert.LessOrEqual(t, tmpl.Cols(), 3)
	}
	assert.Len(t, names, 8, "template names must be unique")
}

func TestNewCatalog(t *testing.T) {
	_, err := NewCatalog(nil)
	assert.ErrorIs(t, err, ErrNoSource)

	c, err := NewCatalog(rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, 8, c.Len())

	custom, err := NewCatalog(rand.New(rand.NewSource(1)), MustShape("bar", "XXXX"))
	require.NoError(t, err)
	assert.Equal(t, 1, custom.Len())
}

func TestDrawRandomShape_UsesSource(t *testing.T) {
	src := &scripted{values: []int{3, 0, 7}}
	c, err := NewCatalog(src)
	require.NoError(t, err)

	assert.Equal(t, "square", c.DrawRandomShape().Name())
	assert.Equal(t, "single", c.DrawRandomShape().Name())
	assert.Equal(t, "line-v", c.DrawRandomShape().Name())
	assert.Equal(t, []int{8, 8, 8}, src.calls)
}

func TestDrawQueue(t *testing.T) {
	src := &scripted{values: []int{1, 1, 2}}
	c, err := NewCatalog(src)
	require.NoError(t, err)

	q := c.DrawQueue(3)
	require.Len(t, q, 3)
	assert.Equal(t, "domino-h", q[0].Name())
	assert.Equal(t, "domino-h", q[1].Name(), "repeats are allowed")
	assert.Equal(t, "domino-v", q[2].Name())

	assert.Panics(t, func() { c.DrawQueue(0) })
}

func TestDrawRandomShape_Uniform(t *testing.T) {
	c, err := NewCatalog(rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	counts := map[string]int{}
	const draws = 8000
	for i := 0; i < draws; i++ {
		counts[c.DrawRandomShape().Name()]++
	}

	assert.Len(t, counts, 8)
	for name, n := range counts {
		assert.InDelta(t, draws/8, n, 200, "shape %s drawn %d times", name, n)
	}
}

func TestTemplates_ReturnsCopy(t *testing.T) {
	c, err := NewCatalog(rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	tmpl := c.Templates()
	tmpl[0] = MustShape("other", "XX")
	assert.Equal(t, "single", c.Templates()[0].Name())
}

func TestLoadTemplates(t *testing.T) {
	dir := t.TempDir()
	content := "name: tee\nXXX\n.X.\n---\nX\nX\nX\nX\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.txt"), []byte(content), 0644))

	templates, err := LoadTemplates(filepath.Join(dir, "custom.txt"))
	require.NoError(t, err)
	require.Len(t, templates, 2)

	assert.Equal(t, "tee", templates[0].Name())
	assert.Equal(t, 4, templates[0].Cells())
	assert.Equal(t, "custom.txt#2", templates[1].Name())
	assert.Equal(t, 4, templates[1].Rows())

	fromDir, err := LoadTemplates(dir)
	require.NoError(t, err)
	assert.Len(t, fromDir, 2)
}

func TestLoadTemplates_TrimsShapes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offset.txt")
	require.NoError(t, os.WriteFile(path, []byte("name: notch\n.X\n---\n...\n.XX\n"), 0644))

	templates, err := LoadTemplates(path)
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, "X", templates[0].String())
	assert.Equal(t, "XX", templates[1].String())
}

func TestLoadTemplates_Errors(t *testing.T) {
	_, err := LoadTemplates(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("name: hollow\n...\n"), 0644))
	_, err = LoadTemplates(path)
	assert.ErrorIs(t, err, ErrEmptyShape)
}
