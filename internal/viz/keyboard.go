package viz

import (
	"atomicgo.dev/keyboard"
	"atomicgo.dev/keyboard/keys"
)

// Keyboard reads single keystrokes from the controlling terminal in raw
// mode. Raw mode is only held while a read is pending.
type Keyboard struct{}

var _ KeySource = Keyboard{}

func (Keyboard) ReadKey() (Key, error) {
	var got Key
	err := keyboard.Listen(func(k keys.Key) (stop bool, err error) {
		got = translateKey(k)
		return true, nil
	})
	if err != nil {
		return Key{}, err
	}
	if got.Code == KeyInterrupt {
		return got, ErrInterrupted
	}
	return got, nil
}

func translateKey(k keys.Key) Key {
	switch k.Code {
	case keys.RuneKey:
		if len(k.Runes) > 0 {
			return RuneKey(k.Runes[0])
		}
	case keys.Space:
		return RuneKey(' ')
	case keys.Up:
		return Key{Code: KeyUp}
	case keys.Down:
		return Key{Code: KeyDown}
	case keys.Left:
		return Key{Code: KeyLeft}
	case keys.Right:
		return Key{Code: KeyRight}
	case keys.CtrlC:
		return Key{Code: KeyInterrupt}
	}
	return Key{Code: KeyOther}
}
