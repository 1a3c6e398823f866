// Package reveal holds the settings of the scroll-triggered fade-in. The
// browser script reads them from the body's data-reveal-config attribute and
// does the observing; templates use the class names.
package reveal

import (
	"encoding/json"
	"time"
)

// Class names shared with the templates and the browser script.
const (
	ClassFadeIn  = "fade-in-up"
	ClassVisible = "visible"
)

// Options configures the viewport watcher.
type Options struct {
	Threshold     float64
	RootMargin    string
	ProgressDelay time.Duration
}

// DefaultOptions reveals an element once 15% of it is inside the viewport
// shrunk by 50px at the bottom, and fills skill bars 200ms later.
func DefaultOptions() Options {
	return Options{
		Threshold:     0.15,
		RootMargin:    "0px 0px -50px 0px",
		ProgressDelay: 200 * time.Millisecond,
	}
}

// ScriptConfig is the wire form of Options.
type ScriptConfig struct {
	Threshold       float64 `json:"threshold"`
	RootMargin      string  `json:"rootMargin"`
	ProgressDelayMs int64   `json:"progressDelayMs"`
	FadeClass       string  `json:"fadeClass"`
	VisibleClass    string  `json:"visibleClass"`
}

// Script converts the options for the browser.
func (o Options) Script() ScriptConfig {
	return ScriptConfig{
		Threshold:       o.Threshold,
		RootMargin:      o.RootMargin,
		ProgressDelayMs: o.ProgressDelay.Milliseconds(),
		FadeClass:       ClassFadeIn,
		VisibleClass:    ClassVisible,
	}
}

// ScriptJSON encodes the options for the browser script.
func (o Options) ScriptJSON() string {
	b, err := json.Marshal(o.Script())
	if err != nil {
		return "{}"
	}
	return string(b)
}
