package demo

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/aocviz/internal/style"
	"github.com/san-kum/aocviz/internal/viz"
)

type tile uint8

const (
	air tile = iota
	rock
	sand
)

// sandFallFrames is how many falling steps pass between two frames.
const sandFallFrames = 5

var sandSource = point{500, 0}

// cave is a grid of tiles anchored at origin that grows when a tile is set
// outside of it.
type cave struct {
	origin point
	tiles  [][]tile
	width  int
}

func (c *cave) height() int { return len(c.tiles) }

func (c *cave) set(p point, t tile) {
	i, j := p.y-c.origin.y, p.x-c.origin.x
	if j >= c.width {
		for r := range c.tiles {
			c.tiles[r] = append(c.tiles[r], make([]tile, j-c.width+1)...)
		}
		c.width = j + 1
	}
	for i >= len(c.tiles) {
		c.tiles = append(c.tiles, make([]tile, c.width))
	}
	c.tiles[i][j] = t
}

func (c *cave) at(p point) tile {
	i, j := p.y-c.origin.y, p.x-c.origin.x
	if i < 0 || j < 0 || i >= len(c.tiles) || j >= c.width {
		return air
	}
	return c.tiles[i][j]
}

func (c *cave) draw(v viz.Visualizer) {
	if !v.Enabled() {
		return
	}
	for _, row := range c.tiles {
		for _, t := range row {
			switch t {
			case rock:
				v.WriteChar('#')
			case sand:
				v.WriteChar('o')
			default:
				v.WriteChar(' ')
			}
		}
		v.WriteNewline()
	}
	v.EndFrame()
}

func parseCave(input string) (*cave, error) {
	var paths [][]point
	minX := sandSource.x
	sc := bufio.NewScanner(strings.NewReader(input))
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var path []point
		for _, field := range strings.Split(line, " -> ") {
			xs, ys, ok := strings.Cut(field, ",")
			x, errX := strconv.Atoi(xs)
			y, errY := strconv.Atoi(ys)
			if !ok || errX != nil || errY != nil || y < 0 {
				return nil, fmt.Errorf("%w: line %d: %q", ErrBadInput, n, field)
			}
			path = append(path, point{x, y})
			minX = min(minX, x)
		}
		paths = append(paths, path)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no rock paths", ErrBadInput)
	}

	// One spare column on the left lets sand fall past the leftmost rock.
	c := &cave{origin: point{minX - 1, 0}}
	c.set(sandSource, air)
	for _, path := range paths {
		for i := 1; i < len(path); i++ {
			from, to := path[i-1], path[i]
			if from.x != to.x && from.y != to.y {
				return nil, fmt.Errorf("%w: diagonal rock path %v -> %v", ErrBadInput, from, to)
			}
			step := point{sign(to.x - from.x), sign(to.y - from.y)}
			for p := from; ; p = p.add(step) {
				c.set(p, rock)
				if p == to {
					break
				}
			}
		}
	}
	return c, nil
}

// Sand pours sand from (500,0) into a cave of rock paths and counts the
// units that come to rest before one falls into the abyss.
type Sand struct{}

func (Sand) Name() string  { return "sand" }
func (Sand) Title() string { return "Regolith Reservoir: sand pouring into a cave" }

func (Sand) Solve(input string, v viz.Visualizer) (int, error) {
	c, err := parseCave(input)
	if err != nil {
		return 0, err
	}
	v.RegisterStyle(style.Option{Char: 'o', Color: style.HSL(46, 100, 55)})
	v.RegisterStyle(style.Option{Char: '#', Bold: true, Color: style.HSL(0, 100, 100)})

	moves := []point{{0, 1}, {-1, 1}, {1, 1}}
	bottom := c.height() - 1
	for rested := 0; ; rested++ {
		cur := sandSource
		falling := 0
		for {
			if cur.y >= bottom {
				return rested, nil
			}
			falling++
			if falling%sandFallFrames == 0 {
				c.draw(v)
			}
			c.set(cur, sand)
			moved := false
			for _, m := range moves {
				next := cur.add(m)
				if c.at(next) == air {
					c.set(cur, air)
					cur = next
					c.set(cur, sand)
					moved = true
					break
				}
			}
			if !moved {
				c.draw(v)
				if cur == sandSource {
					// The source is blocked; no further grain can fall.
					return rested + 1, nil
				}
				break
			}
		}
	}
}
