// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ik5/sfzpbx/config"
)

var (
	// Global flags
	cfgFile    string
	verbose    bool
	sampleRate int
	blockSize  int

	globalConfig *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sfzpbx",
	Short: "Polyphonic SFZ sample player",
	Long: `sfzpbx plays Standard MIDI Files through SFZ instruments.

Samples may be WAV, AIFF, FLAC, MP3 or Ogg Vorbis. Settings come from a
YAML file (see 'sfzpbx config init') and can be overridden by flags.

Examples:
  # Render a song to disk
  sfzpbx render piano.sfz song.mid -o song.wav

  # Listen to it
  sfzpbx play piano.sfz song.mid

  # See what the instrument maps where
  sfzpbx info piano.sfz
`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML settings file (default: built-in settings)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().IntVar(&sampleRate, "sample-rate", 0, "render rate in Hz, overrides the config file")
	rootCmd.PersistentFlags().IntVar(&blockSize, "block-size", 0, "frames per render block, overrides the config file")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig(_ *cobra.Command, _ []string) error {
	cfg := config.Default()
	if cfgFile != "" {
		var err error
		if cfg, err = config.Load(cfgFile); err != nil {
			return err
		}
	}

	if sampleRate != 0 {
		cfg.SampleRate = sampleRate
	}
	if blockSize != 0 {
		cfg.BlockSize = blockSize
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	globalConfig = cfg
	return nil
}

// getConfig returns the settings resolved by initConfig.
func getConfig() *config.Config {
	if globalConfig == nil {
		return config.Default()
	}
	return globalConfig
}
