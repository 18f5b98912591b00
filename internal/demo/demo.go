// Package demo holds small puzzle solvers that draw their progress on a
// viz.Visualizer.
package demo

import (
	"embed"
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/aocviz/internal/viz"
)

//go:embed inputs/*.txt
var inputs embed.FS

// ErrUnknownDemo is returned by Get for names that are not registered.
var ErrUnknownDemo = errors.New("demo: unknown demo")

// ErrBadInput wraps puzzle input parse failures.
var ErrBadInput = errors.New("demo: bad input")

// Demo solves one puzzle, emitting frames to v as it goes. Solvers check
// v.Enabled() before building frames.
type Demo interface {
	Name() string
	Title() string
	Solve(input string, v viz.Visualizer) (int, error)
}

var registry = map[string]Demo{}

func register(d Demo) {
	registry[d.Name()] = d
}

func init() {
	register(Rope{})
	register(Sand{})
}

func Get(name string) (Demo, error) {
	d, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDemo, name)
	}
	return d, nil
}

// List returns all demos sorted by name.
func List() []Demo {
	out := make([]Demo, 0, len(registry))
	for _, d := range registry {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Input returns the bundled example input of d.
func Input(d Demo) (string, error) {
	data, err := inputs.ReadFile("inputs/" + d.Name() + ".txt")
	if err != nil {
		return "", fmt.Errorf("demo: input for %s: %w", d.Name(), err)
	}
	return string(data), nil
}

// Run solves d on its bundled input.
func Run(d Demo, v viz.Visualizer) (int, error) {
	in, err := Input(d)
	if err != nil {
		return 0, err
	}
	return d.Solve(in, v)
}

type point struct {
	x, y int
}

func (p point) add(q point) point { return point{p.x + q.x, p.y + q.y} }
func (p point) sub(q point) point { return point{p.x - q.x, p.y - q.y} }

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
