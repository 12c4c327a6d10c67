package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"overterm/internal/app"
	"overterm/internal/config"
)

var (
	flagConfig       string
	flagTheme        string
	flagMinLevel     string
	flagAutocomplete string
	flagHidden       bool
	flagNoWatch      bool
)

var rootCmd = &cobra.Command{
	Use:   "overterm",
	Short: "overterm – drop-down command terminal",
	Long:  "overterm runs a host screen with a toggleable command terminal overlay.",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		c, err := config.Load(path)
		if err != nil {
			return err
		}
		// flags win over the file
		if flagTheme != "" {
			c.Theme = flagTheme
		}
		if flagMinLevel != "" {
			c.MinLevel = flagMinLevel
		}
		if flagAutocomplete != "" {
			c.Autocomplete = flagAutocomplete
		}
		return app.Start(app.Options{
			Config:     c,
			ConfigPath: path,
			Watch:      !flagNoWatch,
			Hidden:     flagHidden,
		})
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&flagConfig, "config", "", "config file (default: <user config dir>/overterm/config.yaml)")
	rootCmd.Flags().StringVar(&flagTheme, "theme", "", "color theme, see `overterm themes`")
	rootCmd.Flags().StringVar(&flagMinLevel, "min-level", "", "lowest selectable log level")
	rootCmd.Flags().StringVar(&flagAutocomplete, "autocomplete", "", "completion overlay position: up, down or disabled")
	rootCmd.Flags().BoolVar(&flagHidden, "hidden", false, "start with the terminal closed")
	rootCmd.Flags().BoolVar(&flagNoWatch, "no-watch", false, "do not reload the config file when it changes")
}

func configPath() (string, error) {
	if flagConfig != "" {
		return flagConfig, nil
	}
	return config.Path()
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
