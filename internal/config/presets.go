package config

import "sort"

// Presets are named playback settings selectable with --preset.
var Presets = map[string]*Config{
	"smooth": {
		FPS: 60, HistoryDepth: DefaultHistoryDepth,
		Image: ImageConfig{Width: DefaultImageWidth, AspectRatio: DefaultAspectRatio},
	},
	"slow": {
		FPS: 4, HistoryDepth: DefaultHistoryDepth,
		Image: ImageConfig{Width: DefaultImageWidth, AspectRatio: DefaultAspectRatio},
	},
	"browse": {
		FPS: DefaultFPS, Interactive: true, HistoryDepth: DefaultHistoryDepth,
		Image: ImageConfig{Width: DefaultImageWidth, AspectRatio: DefaultAspectRatio},
	},
	"handdrawn": {
		FPS: 12, HistoryDepth: DefaultHistoryDepth,
		Image: ImageConfig{Width: 1200, AspectRatio: 0.6, Jitter: 1.5, Dither: true},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Styles = append([]StyleConfig(nil), p.Styles...)
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
