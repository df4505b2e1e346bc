package nrl

import "github.com/drepper/nrl/internal/rawterm"

// TermInfo carries terminal capabilities and default colors. Detecting
// these (querying terminfo, probing OSC 11/10 for default background and
// foreground, checking for OSC 133 support) is an external collaborator's
// job; Session only ever reads a TermInfo it's handed.
type TermInfo struct {
	// DefaultForeground and DefaultBackground are the terminal's resting
	// colors, used to derive frame and dim-hint colors via rawterm.Adjust.
	DefaultForeground rawterm.Color
	DefaultBackground rawterm.Color

	// SupportsOSC133 selects what Session emits before the prompt: OSC
	// 133;L when true, a plain "\r" when false. The OSC 133;A, ;B and ;C
	// markers around the prompt and at commit are emitted either way.
	SupportsOSC133 bool
}
