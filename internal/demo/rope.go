package demo

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/aocviz/internal/style"
	"github.com/san-kum/aocviz/internal/viz"
)

const (
	ropeKnots    = 10
	ropeHalfSide = 12
	ropeGridStep = 10
)

var ropeDirections = map[string]point{
	"L": {-1, 0},
	"R": {1, 0},
	"U": {0, 1},
	"D": {0, -1},
}

type ropeMove struct {
	dir   point
	steps int
}

// Rope pulls a ten knot rope through a list of head moves and counts the
// cells the tail visits. Frames follow the tail.
type Rope struct{}

func (Rope) Name() string  { return "rope" }
func (Rope) Title() string { return "Rope Bridge: ten knots following the head" }

func parseRope(input string) ([]ropeMove, error) {
	var moves []ropeMove
	sc := bufio.NewScanner(strings.NewReader(input))
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		dir, count, ok := strings.Cut(line, " ")
		d, known := ropeDirections[dir]
		if !ok || !known {
			return nil, fmt.Errorf("%w: line %d: %q", ErrBadInput, n, line)
		}
		steps, err := strconv.Atoi(count)
		if err != nil || steps < 0 {
			return nil, fmt.Errorf("%w: line %d: %q", ErrBadInput, n, line)
		}
		moves = append(moves, ropeMove{dir: d, steps: steps})
	}
	return moves, sc.Err()
}

func registerRopeStyles(v viz.Visualizer) {
	v.RegisterStyle(style.Option{Char: 'H', Bold: true, Color: style.HSL(0, 100, 100)})
	v.RegisterStyle(style.Option{Char: 'T', Bold: true, Color: style.HSL(0, 100, 80)})
	for k := 1; k <= 9; k++ {
		v.RegisterStyle(style.Option{
			Char:  rune('0' + k),
			Color: style.HSL(float64(360*(k-1)/8), 100, 50),
		})
	}
}

func (Rope) Solve(input string, v viz.Visualizer) (int, error) {
	moves, err := parseRope(input)
	if err != nil {
		return 0, err
	}
	registerRopeStyles(v)

	var rope [ropeKnots]point
	visited := map[point]struct{}{rope[ropeKnots-1]: {}}
	for _, m := range moves {
		for range m.steps {
			rope[0] = rope[0].add(m.dir)
			for i := 1; i < ropeKnots; i++ {
				d := rope[i-1].sub(rope[i])
				if abs(d.x) <= 1 && abs(d.y) <= 1 {
					break
				}
				rope[i] = rope[i].add(point{sign(d.x), sign(d.y)})
			}
			visited[rope[ropeKnots-1]] = struct{}{}

			if v.Enabled() {
				drawRope(v, &rope)
			}
		}
	}
	return len(visited), nil
}

// drawRope writes a window centered on the tail with a grid line every
// ropeGridStep cells.
func drawRope(v viz.Visualizer, rope *[ropeKnots]point) {
	tail := rope[ropeKnots-1]
	for y := tail.y + ropeHalfSide; y >= tail.y-ropeHalfSide; y-- {
		for x := tail.x - ropeHalfSide; x <= tail.x+ropeHalfSide; x++ {
			v.WriteChar(ropeCell(rope, point{x, y}))
		}
		v.WriteNewline()
	}
	v.EndFrame()
}

func ropeCell(rope *[ropeKnots]point, p point) rune {
	for i, k := range rope {
		if k != p {
			continue
		}
		switch i {
		case 0:
			return 'H'
		case ropeKnots - 1:
			return 'T'
		default:
			return rune('0' + i)
		}
	}
	onCol, onRow := p.x%ropeGridStep == 0, p.y%ropeGridStep == 0
	switch {
	case onCol && onRow:
		return '+'
	case onCol:
		return '|'
	case onRow:
		return '-'
	}
	return ' '
}
