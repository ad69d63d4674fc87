// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/ik5/sfzpbx/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write or show engine settings",
}

var configInitCmd = &cobra.Command{
	Use:   "init <file.yaml>",
	Short: "Write the default settings to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !configForce {
			if _, err := os.Stat(args[0]); err == nil {
				return fmt.Errorf("%s already exists, use --force to overwrite", args[0])
			} else if !errors.Is(err, fs.ErrNotExist) {
				return err
			}
		}

		if err := config.Default().Save(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the settings after the config file and flags are applied",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		data, err := yaml.Marshal(getConfig())
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
