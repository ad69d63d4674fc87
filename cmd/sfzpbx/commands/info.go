// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/sfzpbx"
	"github.com/ik5/sfzpbx/formats"
	"github.com/ik5/sfzpbx/instrument"
	"github.com/ik5/sfzpbx/sfz"
)

var infoCmd = &cobra.Command{
	Use:   "info <instrument.sfz>",
	Short: "Show the regions of an instrument",
	Long: `Info loads an instrument, decodes all of its samples and prints one row
per region: the sample, the key and velocity zones, the root key and the
release time.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the sample file extensions that can be decoded",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(formats.NewRegistry().Formats(), " "))
		return nil
	},
}

func init() {
	infoCmd.AddCommand(formatsCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	inst, err := sfzpbx.LoadInstrument(cmd.Context(), args[0], getConfig(), slog.Default())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	bank := inst.Bank()
	fmt.Fprintf(out, "%s %s\n\n",
		titleStyle.Render(filepath.Base(args[0])),
		dimStyle.Render(fmt.Sprintf("%d regions, %d samples, %d Hz", len(inst.Regions()), bank.Len(), inst.SampleRate())))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SAMPLE\tKEYS\tROOT\tVELOCITY\tRELEASE\tLOOP\tLENGTH")
	for _, r := range inst.Regions() {
		s := bank.Get(r.Sample)
		name, length := "-", "-"
		if s != nil {
			name = s.Identity
			length = time.Duration(float64(s.Len()) / float64(s.SampleRate) * float64(time.Second)).Round(time.Millisecond).String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d-%d\t%gs\t%s\t%s\n",
			name,
			keyRange(r),
			rootKey(r),
			r.LowVelocity, r.HighVelocity,
			r.Release,
			r.LoopMode,
			length)
	}
	return w.Flush()
}

func keyRange(r instrument.Region) string {
	if r.LowKey == r.HighKey {
		return sfz.NoteName(r.LowKey)
	}
	return sfz.NoteName(r.LowKey) + "-" + sfz.NoteName(r.HighKey)
}

// rootKey names the key whose frequency matches PitchFrequency, or prints
// the frequency when it falls between keys.
func rootKey(r instrument.Region) string {
	for n := range 128 {
		if f := instrument.NoteFrequency(uint8(n)); math.Abs(f-r.PitchFrequency) < 1e-6 {
			return sfz.NoteName(uint8(n))
		}
	}
	return fmt.Sprintf("%.2fHz", r.PitchFrequency)
}

