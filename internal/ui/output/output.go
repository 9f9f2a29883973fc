// Package output creates termenv outputs that honor NO_COLOR and the
// --no-color flag consistently across the logger and the CLI.
package output

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/muesli/termenv"
)

var colorDisabled atomic.Bool

// DisableColor forces plain output for every Output created afterwards.
func DisableColor(disable bool) {
	colorDisabled.Store(disable)
}

// ColorProfile returns Ascii when NO_COLOR is set or color was disabled, and
// the detected terminal profile otherwise.
func ColorProfile() termenv.Profile {
	if colorDisabled.Load() || os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// New creates a termenv.Output for w using ColorProfile. A nil writer means stderr.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(ColorProfile()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}
