package viz

// action is what the terminal does after a keystroke.
type action int

const (
	actionIgnore  action = iota // re-prompt without redrawing
	actionRedraw                // cursor or viewport changed
	actionAdvance               // return to the algorithm for a new frame
	actionQuit                  // leave interactive mode, then advance
)

// Viewport is the top-left corner of the visible part of a frame.
type Viewport struct {
	Row, Col int
}

// navigator is the history browsing state machine. It owns the cursor into
// the history and the viewport, which survives frame changes.
type navigator struct {
	interactive bool
	cursor      int
	view        Viewport
}

// handle applies k given the index of the newest frame.
func (n *navigator) handle(k Key, last int) action {
	switch {
	case k.is('h'):
		if n.cursor > 0 {
			n.cursor--
		}
		return actionRedraw
	case k.is('l'), k.Code == KeySpace:
		if n.cursor < last {
			n.cursor++
			return actionRedraw
		}
		return actionAdvance
	case k.is('_'):
		n.cursor = 0
		return actionRedraw
	case k.is('$'):
		n.cursor = last
		return actionRedraw
	case k.is('q'):
		n.interactive = false
		return actionQuit
	case k.Code == KeyUp:
		n.view.Row = max(n.view.Row-1, 0)
		return actionRedraw
	case k.Code == KeyDown:
		n.view.Row++
		return actionRedraw
	case k.Code == KeyLeft:
		n.view.Col = max(n.view.Col-1, 0)
		return actionRedraw
	case k.Code == KeyRight:
		n.view.Col++
		return actionRedraw
	}
	return actionIgnore
}
