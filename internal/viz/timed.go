package viz

import "time"

// Timed forwards to another Visualizer and records the duration of every
// EndFrame call.
type Timed struct {
	Visualizer
	now       func() time.Time
	durations []time.Duration
}

func NewTimed(v Visualizer) *Timed {
	return &Timed{Visualizer: v, now: time.Now}
}

func (t *Timed) EndFrame() {
	start := t.now()
	t.Visualizer.EndFrame()
	t.durations = append(t.durations, t.now().Sub(start))
}

// Durations returns the recorded EndFrame durations in call order.
func (t *Timed) Durations() []time.Duration {
	return t.durations
}

// Millis returns the durations in milliseconds.
func (t *Timed) Millis() []float64 {
	ms := make([]float64, len(t.durations))
	for i, d := range t.durations {
		ms[i] = float64(d) / float64(time.Millisecond)
	}
	return ms
}
