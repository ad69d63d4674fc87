// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/sfzpbx"
)

var (
	renderOutput   string
	renderBitDepth int
)

var renderCmd = &cobra.Command{
	Use:   "render <instrument.sfz> <song.mid>",
	Short: "Render a MIDI file into a stereo WAV file",
	Long: `Render plays every note of a Standard MIDI File through the instrument
offline and writes the mix as a stereo WAV file.

The release tail from the settings is appended after the last event so
released notes can fade out.`,
	Args: cobra.ExactArgs(2),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output WAV file (default: song name with .wav)")
	renderCmd.Flags().IntVar(&renderBitDepth, "bit-depth", 0, "output bit depth: 16, 24 or 32 (default from config)")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg := *getConfig()
	if renderBitDepth != 0 {
		cfg.BitDepth = renderBitDepth
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	out := renderOutput
	if out == "" {
		out = strings.TrimSuffix(args[1], filepath.Ext(args[1])) + ".wav"
	}

	start := time.Now()
	frames, err := sfzpbx.RenderSMFToWAV(cmd.Context(), args[0], args[1], out, &cfg, slog.Default())
	if err != nil {
		return err
	}

	slog.Info("render finished",
		"output", out,
		"frames", frames,
		"duration", time.Duration(float64(frames)/float64(cfg.SampleRate)*float64(time.Second)),
		"elapsed", time.Since(start))
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
