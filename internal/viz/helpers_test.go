package viz

import (
	"time"
)

// chunkWriter records every Write call separately.
type chunkWriter struct {
	chunks []string
}

func (w *chunkWriter) Write(p []byte) (int, error) {
	w.chunks = append(w.chunks, string(p))
	return len(p), nil
}

func (w *chunkWriter) last() string {
	if len(w.chunks) == 0 {
		return ""
	}
	return w.chunks[len(w.chunks)-1]
}

type sleepRecorder struct {
	slept []time.Duration
}

func (s *sleepRecorder) sleep(d time.Duration) {
	s.slept = append(s.slept, d)
}

type fatalRecorder struct {
	errs []error
}

func (f *fatalRecorder) fatal(err error) {
	f.errs = append(f.errs, err)
}

// probeKeys calls before ahead of every key read.
type probeKeys struct {
	src    KeySource
	before func()
}

func (p *probeKeys) ReadKey() (Key, error) {
	if p.before != nil {
		p.before()
	}
	return p.src.ReadKey()
}

func writeFrame(v Visualizer, text string) {
	v.WriteString(text)
	v.EndFrame()
}
