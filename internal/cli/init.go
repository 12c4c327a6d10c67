package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"overterm/internal/config"
	"overterm/internal/settings"
	"overterm/internal/system"
)

var initDefaults bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initDefaults, "defaults", false, "write the default config without asking")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or edit the config file",
	Long:  "Create the overterm config file, asking for the initial theme, levels and settings bar layout.",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		c, err := config.Load(path)
		if err != nil {
			return err
		}
		if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
			c = config.Default()
		}
		if !initDefaults {
			c, err = settings.Run(c)
			if errors.Is(err, huh.ErrUserAborted) {
				system.Logger.Warn("aborted, nothing written")
				return nil
			}
			if err != nil {
				return err
			}
		}
		if err := config.Save(path, c); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ wrote %s\n", path)
		return nil
	},
}
