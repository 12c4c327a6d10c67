package ui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// logoBlocks returns 5-row glyphs spelling OVERTERM.
func logoBlocks() [][]string {
	O := []string{" ##### ", "##   ##", "##   ##", "##   ##", " ##### "}
	V := []string{"##   ##", "##   ##", "##   ##", " ## ## ", "  ###  "}
	E := []string{"#######", "##     ", "#####  ", "##     ", "#######"}
	R := []string{"###### ", "##   ##", "###### ", "##  ## ", "##   ##"}
	T := []string{"#######", "  ###  ", "  ###  ", "  ###  ", "  ###  "}
	M := []string{"##   ##", "### ###", "## # ##", "##   ##", "##   ##"}
	return [][]string{O, V, E, R, T, E, R, M}
}

// composeLogoLines joins blocks horizontally, drawing '#' as full blocks.
func composeLogoLines(blocks [][]string) []string {
	if len(blocks) == 0 {
		return nil
	}
	out := make([]string, len(blocks[0]))
	for row := range out {
		parts := make([]string, 0, len(blocks))
		for _, blk := range blocks {
			parts = append(parts, strings.ReplaceAll(blk[row], "#", "█"))
		}
		out[row] = strings.Join(parts, " ")
	}
	return out
}

// backdrop fills width x height with the centered logo and a hint line
// below it. It stands in for whatever the host application would draw.
func backdrop(width, height int, hint string) []string {
	lines := make([]string, height)
	logo := composeLogoLines(logoBlocks())
	if xansi.StringWidth(logo[0]) > width {
		logo = []string{"OVERTERM"}
	}
	block := append(append([]string{}, logo...), "", hint)

	top := (height - len(block)) / 3
	if top < 0 {
		top = 0
	}
	for i, ln := range block {
		row := top + i
		if row >= height {
			break
		}
		style := AccentBold()
		if i >= len(logo) {
			style = MutedStyle()
		}
		ln = xansi.Truncate(ln, width, "")
		pad := (width - xansi.StringWidth(ln)) / 2
		lines[row] = strings.Repeat(" ", max(pad, 0)) + style.Render(ln)
	}
	return lines
}
