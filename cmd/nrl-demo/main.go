// nrl-demo is a basic example of nrl's line editor.
//
// It reads lines from standard input and echoes each back with its byte
// length. Press ^C, ^D, or type "quit" to exit, exactly as goat's own demo
// does.
//
// Pass -frame to decorate the edit area with a single-line-rule frame, or
// -frame-bg for the filled-background presentation.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/drepper/nrl"
	"github.com/drepper/nrl/internal/rawterm"
	"github.com/drepper/nrl/keydecoder"
)

var (
	frameFlag   = flag.Bool("frame", false, "decorate the edit area with a line-rule frame")
	frameBgFlag = flag.Bool("frame-bg", false, "decorate the edit area with a filled-background frame")
)

func main() {
	flag.Parse()

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		log.Fatalf("nrl-demo: stdin is not a terminal")
	}

	flags := nrl.FlagsNone
	switch {
	case *frameBgFlag:
		flags = nrl.FlagsFrameBackground
	case *frameFlag:
		flags = nrl.FlagsFrameLine
	}

	info := detectTermInfo()

	for {
		sess := nrl.New(fd, flags, info, keydecoder.New())
		sess.SetPrompt(nrl.LiteralPrompt("> "))
		sess.SetEmptyMessage("type a line, or \"quit\" to exit")

		line, err := sess.Read()
		if err != nil {
			log.Fatalf("nrl-demo: read: %s", err)
		}

		// Read's contract makes no distinction between a cancelled edit
		// (^C, ^D on an empty buffer) and a genuinely empty committed
		// line — both return "". The demo treats either the same way
		// the teacher's own demo treats ^C/^D/"quit": as a request to
		// exit.
		if line == "" || line == "quit" {
			fmt.Print("Goodbye!\r\n")
			return
		}

		fmt.Printf("read %d bytes: %q\r\n", len(line), line)
	}
}

// detectTermInfo probes the handful of terminal properties Session needs
// but doesn't discover itself. A
// full implementation would query OSC 11/10 for the resting colors and
// check terminfo for Sync/OSC 133 support; lacking a terminfo database
// binding in the retrieval pack, this falls back to the conservative
// defaults most dark-background terminal emulators use, with OSC 133
// support gated on the TERM_PROGRAM and KITTY_WINDOW_ID environment
// variables.
func detectTermInfo() *nrl.TermInfo {
	return &nrl.TermInfo{
		DefaultForeground: rawterm.Color{R: 0xd0, G: 0xd0, B: 0xd0},
		DefaultBackground: rawterm.Color{R: 0x10, G: 0x10, B: 0x10},
		SupportsOSC133:    supportsOSC133(),
	}
}

func supportsOSC133() bool {
	switch os.Getenv("TERM_PROGRAM") {
	case "vscode", "iTerm.app", "WezTerm":
		return true
	}
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	return false
}
