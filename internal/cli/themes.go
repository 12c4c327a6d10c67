package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"overterm/internal/term"
)

func init() { rootCmd.AddCommand(themesCmd) }

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List built-in color themes",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, th := range term.Themes() {
			fmt.Fprintf(out, "%-14s %s\n", th.Name, swatch(th))
		}
	},
}

// swatch shows the log colors of a theme, trace to critical.
func swatch(th term.Theme) string {
	var b strings.Builder
	for s := term.Trace; s <= term.Critical; s++ {
		slot, _ := term.LogSlot(s)
		c, ok := th.Get(slot)
		if !ok {
			b.WriteString("  ")
			continue
		}
		b.WriteString(lipgloss.NewStyle().Background(c.Lipgloss()).Render("  "))
	}
	return b.String()
}
