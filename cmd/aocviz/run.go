package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/san-kum/aocviz/internal/config"
	"github.com/san-kum/aocviz/internal/demo"
	"github.com/san-kum/aocviz/internal/encode"
	"github.com/san-kum/aocviz/internal/export"
	"github.com/san-kum/aocviz/internal/storage"
	"github.com/san-kum/aocviz/internal/tui"
	"github.com/san-kum/aocviz/internal/viz"
	"github.com/spf13/cobra"
)

// loadConfig reads --config, else the XDG config file if present, else the
// defaults. A preset replaces the file settings but keeps its styles.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = c
		log.Debug().Str("path", configFile).Msg("config loaded")
	} else {
		c, path, err := config.LoadDefault()
		if err != nil {
			return nil, err
		}
		cfg = c
		if path != "" {
			log.Debug().Str("path", path).Msg("config loaded")
		}
	}

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q (see 'aocviz presets')", preset)
		}
		p.Styles = cfg.Styles
		cfg = p
	}
	return cfg, nil
}

// applyFlags overrides cfg with the flags given on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("fps") {
		cfg.FPS = fps
	}
	if f.Changed("interactive") {
		cfg.Interactive = interactive
	}
	if f.Changed("history") {
		cfg.HistoryDepth = historySize
	}
	if f.Changed("gif") {
		cfg.Image.Output = gifPath
	}
	if f.Changed("gif-width") {
		cfg.Image.Width = gifWidth
	}
	if f.Changed("jitter") {
		cfg.Image.Jitter = jitter
	}
	if f.Changed("aspect") {
		cfg.Image.AspectRatio = aspect
	}
	if f.Changed("dither") {
		cfg.Image.Dither = dither
	}
}

func runDemo(cmd *cobra.Command, args []string) error {
	d, err := demo.Get(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	backend := tui.BackendNone
	switch {
	case cfg.Image.Output != "":
		backend = tui.BackendGIF
	case visualize || cfg.Interactive:
		backend = tui.BackendTerminal
	}
	return solve(d, backend, cfg)
}

func runLauncher(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	var items []tui.Item
	for _, d := range demo.List() {
		items = append(items, tui.Item{Name: d.Name(), Title: d.Title()})
	}

	sel, ok, err := tui.Run(items, *cfg)
	if err != nil || !ok {
		return err
	}
	d, err := demo.Get(sel.Demo)
	if err != nil {
		return err
	}
	if sel.Backend != tui.BackendGIF {
		sel.Settings.Image.Output = ""
	}
	return solve(d, sel.Backend, &sel.Settings)
}

// solve runs d against the sink for backend and prints the answer.
func solve(d demo.Demo, backend tui.Backend, cfg *config.Config) error {
	sink, err := newSink(backend, cfg)
	if err != nil {
		return err
	}
	var snap *viz.Snapshot
	if svgPath != "" {
		snap = viz.NewSnapshot(sink)
		sink = snap
	}
	styles, err := cfg.StyleOptions()
	if err != nil {
		return err
	}
	for _, s := range styles {
		sink.RegisterStyle(s)
	}

	var timed *viz.Timed
	if (stats || saveRun) && sink.Enabled() {
		timed = viz.NewTimed(sink)
		sink = timed
	}

	start := time.Now()
	answer, err := demo.Run(d, sink)
	elapsed := time.Since(start)
	closeErr := sink.Close()
	if err != nil {
		return err
	}
	switch {
	case errors.Is(closeErr, encode.ErrNoFrames):
		pterm.Warning.Println("no frames were produced, nothing written")
	case closeErr != nil:
		return closeErr
	case backend == tui.BackendGIF:
		pterm.Success.Printfln("animation written to %s", cfg.Image.Output)
	}
	if snap != nil {
		if err := writeSVG(snap); err != nil {
			return err
		}
	}

	pterm.Info.Printfln("%s solved in %s", d.Name(), elapsed.Round(time.Millisecond))
	pterm.Success.Printfln("answer: %d", answer)

	var timings []float64
	if timed != nil {
		timings = timed.Millis()
	}
	if stats {
		printStats(timings)
	}
	if saveRun {
		return recordRun(storage.RunMetadata{
			Demo:      d.Name(),
			Backend:   backend.String(),
			FPS:       cfg.FPS,
			Output:    cfg.Image.Output,
			Answer:    answer,
			Frames:    len(timings),
			ElapsedMS: float64(elapsed) / float64(time.Millisecond),
		}, timings)
	}
	return nil
}

func writeSVG(snap *viz.Snapshot) error {
	last := snap.Last()
	if last == nil {
		pterm.Warning.Println("no frames were produced, no SVG written")
		return nil
	}
	f, err := os.Create(svgPath)
	if err != nil {
		return err
	}
	if err := export.FrameSVG(f, last, nil, 16); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	pterm.Success.Printfln("last frame written to %s", svgPath)
	return nil
}

func recordRun(meta storage.RunMetadata, timings []float64) error {
	st := storage.New(storage.DefaultDir())
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(meta, timings)
	if err != nil {
		return err
	}
	log.Info().Str("id", id).Msg("run recorded")
	return nil
}

func newSink(backend tui.Backend, cfg *config.Config) (viz.Visualizer, error) {
	switch backend {
	case tui.BackendTerminal:
		browse := cfg.Interactive
		if browse && !isatty.IsTerminal(os.Stdin.Fd()) {
			pterm.Warning.Println("stdin is not a terminal, interactive mode disabled")
			browse = false
		}
		return viz.NewTerminal(cfg.FPS, browse, viz.WithHistoryDepth(cfg.HistoryDepth))
	case tui.BackendGIF:
		opts := []viz.SequenceOption{
			viz.WithAspectRatio(cfg.Image.AspectRatio),
			viz.WithJitter(cfg.Image.Jitter),
		}
		if cfg.Image.Dither {
			opts = append(opts, viz.WithGIFOptions(encode.WithDither()))
		}
		return viz.NewImageSequence(cfg.Image.Output, cfg.FPS, cfg.Image.Width, opts...)
	}
	return viz.Disabled{}, nil
}

func printStats(ms []float64) {
	if len(ms) < 2 {
		return
	}
	graph := asciigraph.Plot(ms,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("end-of-frame time (ms), %d frames", len(ms))),
	)
	fmt.Println()
	fmt.Println(graph)
}

func listDemos(cmd *cobra.Command, args []string) error {
	data := pterm.TableData{{"NAME", "DESCRIPTION"}}
	for _, d := range demo.List() {
		data = append(data, []string{d.Name(), d.Title()})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func listPresets(cmd *cobra.Command, args []string) error {
	data := pterm.TableData{{"PRESET", "FPS", "INTERACTIVE", "WIDTH", "JITTER"}}
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		data = append(data, []string{
			name,
			fmt.Sprintf("%g", p.FPS),
			fmt.Sprintf("%t", p.Interactive),
			fmt.Sprintf("%d", p.Image.Width),
			fmt.Sprintf("%g", p.Image.Jitter),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(storage.DefaultDir()).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		pterm.Info.Println("no recorded runs (use 'aocviz run --save')")
		return nil
	}
	data := pterm.TableData{{"ID", "DEMO", "BACKEND", "ANSWER", "FRAMES", "TIME"}}
	for _, r := range runs {
		data = append(data, []string{
			r.ID,
			r.Demo,
			r.Backend,
			fmt.Sprintf("%d", r.Answer),
			fmt.Sprintf("%d", r.Frames),
			(time.Duration(r.ElapsedMS * float64(time.Millisecond))).Round(time.Millisecond).String(),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
