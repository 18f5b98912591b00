package viz

import (
	"io"
	"strings"
	"unicode/utf8"
)

type KeyCode int

const (
	KeyRune KeyCode = iota
	KeySpace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyInterrupt
	KeyOther
)

// Key is one keystroke. Rune is set for KeyRune and KeySpace.
type Key struct {
	Code KeyCode
	Rune rune
}

// RuneKey returns the key for a printable character.
func RuneKey(r rune) Key {
	if r == ' ' {
		return Key{Code: KeySpace, Rune: ' '}
	}
	return Key{Code: KeyRune, Rune: r}
}

func (k Key) is(r rune) bool {
	return k.Code == KeyRune && k.Rune == r
}

// KeySource delivers keystrokes one at a time, blocking until one arrives.
type KeySource interface {
	ReadKey() (Key, error)
}

// ScriptedKeys replays a fixed key sequence and then returns io.EOF.
type ScriptedKeys struct {
	keys []Key
	pos  int
}

func NewScriptedKeys(keys ...Key) *ScriptedKeys {
	return &ScriptedKeys{keys: keys}
}

var namedKeys = map[string]Key{
	"<up>":    {Code: KeyUp},
	"<down>":  {Code: KeyDown},
	"<left>":  {Code: KeyLeft},
	"<right>": {Code: KeyRight},
	"<space>": {Code: KeySpace, Rune: ' '},
	"<C-c>":   {Code: KeyInterrupt},
}

// ScriptKeys parses a script such as "hh<up>l q". Arrow keys are written
// <up>, <down>, <left>, <right>; every other rune is a key of its own.
func ScriptKeys(script string) *ScriptedKeys {
	var keys []Key
	for len(script) > 0 {
		if script[0] == '<' {
			if end := strings.IndexByte(script, '>'); end > 0 {
				if k, ok := namedKeys[script[:end+1]]; ok {
					keys = append(keys, k)
					script = script[end+1:]
					continue
				}
			}
		}
		r, size := utf8.DecodeRuneInString(script)
		keys = append(keys, RuneKey(r))
		script = script[size:]
	}
	return NewScriptedKeys(keys...)
}

func (s *ScriptedKeys) ReadKey() (Key, error) {
	if s.pos >= len(s.keys) {
		return Key{}, io.EOF
	}
	k := s.keys[s.pos]
	s.pos++
	if k.Code == KeyInterrupt {
		return k, ErrInterrupted
	}
	return k, nil
}

// Remaining returns the number of keys not yet read.
func (s *ScriptedKeys) Remaining() int {
	return len(s.keys) - s.pos
}
