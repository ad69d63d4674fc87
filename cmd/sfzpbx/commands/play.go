// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/sfzpbx"
	"github.com/ik5/sfzpbx/driver"
	"github.com/ik5/sfzpbx/event"
)

var playLatency time.Duration

var playCmd = &cobra.Command{
	Use:   "play <instrument.sfz> <song.mid>",
	Short: "Play a MIDI file through the sound card",
	Long: `Play renders the song in real time and sends it to the default audio
output. Press Ctrl+C to stop early; held notes are released and the
player exits once they have faded.`,
	Args: cobra.ExactArgs(2),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().DurationVar(&playLatency, "latency", 50*time.Millisecond, "audio device buffer length")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg := getConfig()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inst, err := sfzpbx.LoadInstrument(ctx, args[0], cfg, slog.Default())
	if err != nil {
		return err
	}

	tl, err := event.ReadSMF(args[1], cfg.SampleRate)
	if err != nil {
		return fmt.Errorf("%s: %w", args[1], err)
	}

	stream, err := driver.NewStream(inst, cfg.BlockSize,
		driver.WithTimeline(tl),
		driver.WithTail(cfg.ReleaseTailFrames()))
	if err != nil {
		return err
	}

	player, err := driver.NewPlayer(stream, cfg.SampleRate, playLatency)
	if err != nil {
		return err
	}
	defer player.Close()

	slog.Info("playing",
		"song", args[1],
		"events", len(tl),
		"length", time.Duration(float64(tl.Length())/float64(cfg.SampleRate)*float64(time.Second)))
	player.Play()

	err = player.Wait(ctx)
	if ctx.Err() != nil {
		// Interrupted: release everything and let the releases ring out.
		stop()
		player.Stop()
		waitCtx, cancel := context.WithTimeout(context.Background(), cfg.ReleaseTail+time.Second)
		defer cancel()
		_ = player.Wait(waitCtx)
		err = nil
	}

	if n := player.Dropped(); n > 0 {
		slog.Warn("events dropped", "count", n)
	}
	return err
}
