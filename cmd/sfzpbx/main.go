// SPDX-License-Identifier: EPL-2.0

// Package main provides the sfzpbx command line player.
//
// Usage:
//
//	sfzpbx [flags] <command> [args]
//
// Commands:
//
//	render   - render a MIDI file through an instrument into a WAV file
//	play     - play a MIDI file through an instrument on the sound card
//	info     - show the regions of an instrument
//	config   - write or show engine settings
package main

import (
	"fmt"
	"os"

	"github.com/ik5/sfzpbx/cmd/sfzpbx/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
