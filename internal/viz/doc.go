// Package viz provides the frame sinks algorithms draw into.
//
// An algorithm writes characters into a [Visualizer] and calls EndFrame to
// seal each step. Three sinks implement the interface:
//
//   - [Disabled]: drops everything; Enabled reports false so callers can
//     skip building expensive frames.
//   - [Terminal]: prints every frame in place with ANSI erase sequences and
//     keeps a bounded history. In interactive mode it blocks after each
//     frame and lets the user scrub through the history and pan the view.
//   - [ImageSequence]: rasterizes frames and hands them to an animation
//     encoder.
//
// [Timed] wraps any of them and records how long each EndFrame took.
//
// # Key Bindings
//
// While browsing interactively:
//
//	h        - previous frame
//	l, Space - next frame (at the newest frame: let the algorithm continue)
//	_        - oldest retained frame
//	$        - newest frame
//	Arrows   - pan the view
//	q        - leave interactive mode for the rest of the run
//
// Nothing here is safe for concurrent use; sinks are driven by the single
// goroutine running the algorithm.
package viz
