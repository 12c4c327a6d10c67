package term

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ColorSlot names one themable color of the terminal.
type ColorSlot int

const (
	SlotText ColorSlot = iota
	SlotWindowBg
	SlotBorder
	SlotBorderShadow
	SlotButton
	SlotButtonHovered
	SlotButtonActive
	SlotFrameBg
	SlotFrameBgHovered
	SlotFrameBgActive
	SlotTextSelectedBg
	SlotCheckMark
	SlotTitleBg
	SlotTitleBgActive
	SlotTitleBgCollapsed
	SlotMessagePanel
	SlotAutoCompleteSelected
	SlotAutoCompleteNonSelected
	SlotAutoCompleteSeparator
	SlotCmdBacklog
	SlotCmdHistoryCompleted
	SlotLogLevelDropDownListBg
	SlotLogLevelActive
	SlotLogLevelHovered
	SlotLogLevelSelected
	SlotScrollbarBg
	SlotScrollbarGrab
	SlotScrollbarGrabActive
	SlotScrollbarGrabHovered
	SlotFilterHint
	SlotFilterText
	SlotMatchingText
	SlotLogTrace
	SlotLogDebug
	SlotLogInfo
	SlotLogWarning
	SlotLogError
	SlotLogCritical

	slotCount
)

var slotNames = [slotCount]string{
	SlotText:                    "text",
	SlotWindowBg:                "window_bg",
	SlotBorder:                  "border",
	SlotBorderShadow:            "border_shadow",
	SlotButton:                  "button",
	SlotButtonHovered:           "button_hovered",
	SlotButtonActive:            "button_active",
	SlotFrameBg:                 "frame_bg",
	SlotFrameBgHovered:          "frame_bg_hovered",
	SlotFrameBgActive:           "frame_bg_active",
	SlotTextSelectedBg:          "text_selected_bg",
	SlotCheckMark:               "check_mark",
	SlotTitleBg:                 "title_bg",
	SlotTitleBgActive:           "title_bg_active",
	SlotTitleBgCollapsed:        "title_bg_collapsed",
	SlotMessagePanel:            "message_panel",
	SlotAutoCompleteSelected:    "auto_complete_selected",
	SlotAutoCompleteNonSelected: "auto_complete_non_selected",
	SlotAutoCompleteSeparator:   "auto_complete_separator",
	SlotCmdBacklog:              "cmd_backlog",
	SlotCmdHistoryCompleted:     "cmd_history_completed",
	SlotLogLevelDropDownListBg:  "log_level_drop_down_bg",
	SlotLogLevelActive:          "log_level_active",
	SlotLogLevelHovered:         "log_level_hovered",
	SlotLogLevelSelected:        "log_level_selected",
	SlotScrollbarBg:             "scrollbar_bg",
	SlotScrollbarGrab:           "scrollbar_grab",
	SlotScrollbarGrabActive:     "scrollbar_grab_active",
	SlotScrollbarGrabHovered:    "scrollbar_grab_hovered",
	SlotFilterHint:              "filter_hint",
	SlotFilterText:              "filter_text",
	SlotMatchingText:            "matching_text",
	SlotLogTrace:                "log_trace",
	SlotLogDebug:                "log_debug",
	SlotLogInfo:                 "log_info",
	SlotLogWarning:              "log_warning",
	SlotLogError:                "log_error",
	SlotLogCritical:             "log_critical",
}

func (s ColorSlot) String() string {
	if s < 0 || s >= slotCount {
		return fmt.Sprintf("slot(%d)", int(s))
	}
	return slotNames[s]
}

// ColorSlots lists every slot in declaration order.
func ColorSlots() []ColorSlot {
	out := make([]ColorSlot, 0, slotCount)
	for s := ColorSlot(0); s < slotCount; s++ {
		out = append(out, s)
	}
	return out
}

// ParseColorSlot looks a slot up by its snake_case name.
func ParseColorSlot(name string) (ColorSlot, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range slotNames {
		if n == name {
			return ColorSlot(s), true
		}
	}
	return 0, false
}

// LogSlot returns the slot holding the color of a severity.
func LogSlot(s Severity) (ColorSlot, bool) {
	if s < Trace || s > Critical {
		return 0, false
	}
	return SlotLogTrace + ColorSlot(s), true
}

// Color is an RGBA color with components in [0,1].
type Color struct {
	R, G, B, A float32
}

// RGBA8 builds a Color from 0-255 components.
func RGBA8(r, g, b, a uint8) Color {
	return Color{R: float32(r) / 255, G: float32(g) / 255, B: float32(b) / 255, A: float32(a) / 255}
}

func to255(v float32) int {
	n := int(v*255 + 0.5)
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}

// Components returns the 0-255 components.
func (c Color) Components() (r, g, b, a int) {
	return to255(c.R), to255(c.G), to255(c.B), to255(c.A)
}

// Hex renders the color as #rrggbb, or #rrggbbaa when not opaque.
func (c Color) Hex() string {
	r, g, b, a := c.Components()
	if a == 255 {
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, a)
}

// Lipgloss converts the color for drawing. The terminal has no alpha
// channel, so the alpha component is dropped.
func (c Color) Lipgloss() lipgloss.Color {
	r, g, b, _ := c.Components()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}

// ParseColor reads #rgb, #rrggbb or #rrggbbaa.
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(h) == 6 {
		return RGBA8(uint8(v>>16), uint8(v>>8), uint8(v), 255), nil
	}
	return RGBA8(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// Theme maps color slots to colors. A slot without an entry falls back to
// the host's default style.
type Theme struct {
	Name   string
	Colors map[ColorSlot]Color
}

// Get returns the color of a slot, if set.
func (t *Theme) Get(s ColorSlot) (Color, bool) {
	if t == nil || t.Colors == nil {
		return Color{}, false
	}
	c, ok := t.Colors[s]
	return c, ok
}

// Set assigns a slot.
func (t *Theme) Set(s ColorSlot, c Color) {
	if t.Colors == nil {
		t.Colors = make(map[ColorSlot]Color, slotCount)
	}
	t.Colors[s] = c
}

// Unset clears one slot.
func (t *Theme) Unset(s ColorSlot) {
	delete(t.Colors, s)
}

// Reset clears every slot.
func (t *Theme) Reset() {
	t.Name = ""
	t.Colors = map[ColorSlot]Color{}
}

// Clone returns a deep copy, so presets are never mutated through a terminal.
func (t Theme) Clone() Theme {
	out := Theme{Name: t.Name, Colors: make(map[ColorSlot]Color, len(t.Colors))}
	for k, v := range t.Colors {
		out.Colors[k] = v
	}
	return out
}

func rgba(r, g, b, a float32) Color { return Color{R: r, G: g, B: b, A: a} }

// ThemeCherry is a dark theme with cherry accents.
var ThemeCherry = Theme{
	Name: "Dark Cherry",
	Colors: map[ColorSlot]Color{
		SlotText:                    rgba(0.649, 0.661, 0.669, 1.000),
		SlotWindowBg:                rgba(0.130, 0.140, 0.170, 1.000),
		SlotBorder:                  rgba(0.310, 0.310, 1.000, 0.000),
		SlotBorderShadow:            rgba(0.000, 0.000, 0.000, 0.000),
		SlotButton:                  rgba(0.470, 0.770, 0.830, 0.140),
		SlotButtonHovered:           rgba(0.455, 0.198, 0.301, 0.860),
		SlotButtonActive:            rgba(0.455, 0.198, 0.301, 1.000),
		SlotFrameBg:                 rgba(0.200, 0.220, 0.270, 1.000),
		SlotFrameBgHovered:          rgba(0.455, 0.198, 0.301, 0.780),
		SlotFrameBgActive:           rgba(0.455, 0.198, 0.301, 1.000),
		SlotTextSelectedBg:          rgba(0.455, 0.198, 0.301, 0.430),
		SlotCheckMark:               rgba(0.710, 0.202, 0.207, 1.000),
		SlotTitleBg:                 rgba(0.232, 0.201, 0.271, 1.000),
		SlotTitleBgActive:           rgba(0.502, 0.075, 0.256, 1.000),
		SlotTitleBgCollapsed:        rgba(0.200, 0.220, 0.270, 0.750),
		SlotMessagePanel:            rgba(0.100, 0.100, 0.100, 0.500),
		SlotAutoCompleteSelected:    rgba(1.000, 1.000, 1.000, 1.000),
		SlotAutoCompleteNonSelected: rgba(0.500, 0.450, 0.450, 1.000),
		SlotAutoCompleteSeparator:   rgba(0.600, 0.600, 0.600, 1.000),
		SlotCmdBacklog:              rgba(0.860, 0.930, 0.890, 1.000),
		SlotCmdHistoryCompleted:     rgba(0.153, 0.596, 0.498, 1.000),
		SlotLogLevelDropDownListBg:  rgba(0.100, 0.100, 0.100, 0.860),
		SlotLogLevelActive:          rgba(0.730, 0.130, 0.370, 1.000),
		SlotLogLevelHovered:         rgba(0.450, 0.190, 0.300, 0.430),
		SlotLogLevelSelected:        rgba(0.730, 0.130, 0.370, 0.580),
		SlotScrollbarBg:             rgba(0.000, 0.000, 0.000, 0.000),
		SlotScrollbarGrab:           rgba(0.690, 0.690, 0.690, 0.800),
		SlotScrollbarGrabActive:     rgba(0.490, 0.490, 0.490, 0.800),
		SlotScrollbarGrabHovered:    rgba(0.490, 0.490, 0.490, 1.000),
		SlotFilterHint:              rgba(0.649, 0.661, 0.669, 1.000),
		SlotFilterText:              rgba(1.000, 1.000, 1.000, 1.000),
		SlotMatchingText:            rgba(0.490, 0.240, 1.000, 1.000),
		SlotLogTrace:                rgba(0.549, 0.561, 0.569, 1.000),
		SlotLogDebug:                rgba(0.153, 0.596, 0.498, 1.000),
		SlotLogInfo:                 rgba(0.459, 0.686, 0.129, 1.000),
		SlotLogWarning:              rgba(0.839, 0.749, 0.333, 1.000),
		SlotLogError:                rgba(1.000, 0.420, 0.408, 1.000),
		SlotLogCritical:             rgba(1.000, 0.420, 0.408, 1.000),
	},
}

// ThemeLight is a light theme with rainbow log colors.
var ThemeLight = Theme{
	Name: "Light Rainbow",
	Colors: map[ColorSlot]Color{
		SlotText:                    rgba(0.100, 0.100, 0.100, 1.000),
		SlotWindowBg:                rgba(0.243, 0.443, 0.624, 1.000),
		SlotBorder:                  rgba(0.600, 0.600, 0.600, 1.000),
		SlotBorderShadow:            rgba(0.000, 0.000, 0.000, 0.000),
		SlotButton:                  rgba(0.902, 0.843, 0.843, 0.875),
		SlotButtonHovered:           rgba(0.824, 0.765, 0.765, 0.875),
		SlotButtonActive:            rgba(0.627, 0.569, 0.569, 0.875),
		SlotFrameBg:                 rgba(0.902, 0.843, 0.843, 0.875),
		SlotFrameBgHovered:          rgba(0.824, 0.765, 0.765, 0.875),
		SlotFrameBgActive:           rgba(0.627, 0.569, 0.569, 0.875),
		SlotTextSelectedBg:          rgba(0.260, 0.590, 0.980, 0.350),
		SlotCheckMark:               rgba(0.843, 0.000, 0.373, 1.000),
		SlotTitleBg:                 rgba(0.243, 0.443, 0.624, 0.850),
		SlotTitleBgActive:           rgba(0.165, 0.365, 0.506, 1.000),
		SlotTitleBgCollapsed:        rgba(0.243, 0.443, 0.624, 0.850),
		SlotMessagePanel:            rgba(0.902, 0.843, 0.843, 0.875),
		SlotAutoCompleteSelected:    rgba(0.196, 1.000, 0.196, 1.000),
		SlotAutoCompleteNonSelected: rgba(0.000, 0.000, 0.000, 1.000),
		SlotAutoCompleteSeparator:   rgba(0.000, 0.000, 0.000, 0.392),
		SlotCmdBacklog:              rgba(0.519, 0.118, 0.715, 1.000),
		SlotCmdHistoryCompleted:     rgba(1.000, 0.430, 0.059, 1.000),
		SlotLogLevelDropDownListBg:  rgba(0.901, 0.843, 0.843, 0.784),
		SlotLogLevelActive:          rgba(0.443, 0.705, 1.000, 1.000),
		SlotLogLevelHovered:         rgba(0.443, 0.705, 0.784, 0.705),
		SlotLogLevelSelected:        rgba(0.443, 0.623, 0.949, 1.000),
		SlotScrollbarBg:             rgba(0.000, 0.000, 0.000, 0.000),
		SlotScrollbarGrab:           rgba(0.470, 0.470, 0.588, 1.000),
		SlotScrollbarGrabActive:     rgba(0.392, 0.392, 0.509, 1.000),
		SlotScrollbarGrabHovered:    rgba(0.509, 0.509, 0.666, 1.000),
		SlotFilterHint:              rgba(0.470, 0.470, 0.470, 1.000),
		SlotFilterText:              rgba(0.100, 0.100, 0.100, 1.000),
		SlotMatchingText:            rgba(0.549, 0.196, 0.039, 1.000),
		SlotLogTrace:                rgba(0.078, 0.117, 0.764, 1.000),
		SlotLogDebug:                rgba(0.100, 0.100, 0.100, 1.000),
		SlotLogInfo:                 rgba(0.301, 0.529, 0.000, 1.000),
		SlotLogWarning:              rgba(0.784, 0.431, 0.058, 1.000),
		SlotLogError:                rgba(0.901, 0.117, 0.117, 1.000),
		SlotLogCritical:             rgba(0.901, 0.117, 0.117, 1.000),
	},
}

func hex(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ThemeVitesse follows the Vitesse Dark Soft palette:
// https://github.com/antfu/vscode-theme-vitesse/blob/main/themes/vitesse-dark-soft.json
var ThemeVitesse = Theme{
	Name: "Vitesse Dark",
	Colors: map[ColorSlot]Color{
		SlotText:                    hex("#dbd7ca"),
		SlotWindowBg:                hex("#181818"),
		SlotBorder:                  hex("#3a3a3a"),
		SlotButton:                  hex("#4d9375"),
		SlotButtonHovered:           hex("#5eaab5"),
		SlotButtonActive:            hex("#4d9375"),
		SlotFrameBg:                 hex("#292929"),
		SlotTextSelectedBg:          hex("#4d9375"),
		SlotCheckMark:               hex("#4d9375"),
		SlotTitleBg:                 hex("#222222"),
		SlotTitleBgActive:           hex("#292929"),
		SlotMessagePanel:            hex("#181818"),
		SlotAutoCompleteSelected:    hex("#4d9375"),
		SlotAutoCompleteNonSelected: hex("#bfbaaa"),
		SlotAutoCompleteSeparator:   hex("#dedcd590"),
		SlotCmdBacklog:              hex("#6394bf"),
		SlotCmdHistoryCompleted:     hex("#d9739f"),
		SlotLogLevelSelected:        hex("#4d9375"),
		SlotScrollbarGrab:           hex("#bfbaaa"),
		SlotFilterHint:              hex("#dedcd590"),
		SlotFilterText:              hex("#dbd7ca"),
		SlotMatchingText:            hex("#e6cc77"),
		SlotLogTrace:                hex("#bfbaaa"),
		SlotLogDebug:                hex("#5eaab5"),
		SlotLogInfo:                 hex("#4d9375"),
		SlotLogWarning:              hex("#e6cc77"),
		SlotLogError:                hex("#cb7676"),
		SlotLogCritical:             hex("#cb7676"),
	},
}

// Themes lists the preset themes.
func Themes() []Theme {
	return []Theme{ThemeCherry, ThemeLight, ThemeVitesse}
}

// FindTheme looks a preset up by name, ignoring case.
func FindTheme(name string) (Theme, bool) {
	for _, th := range Themes() {
		if strings.EqualFold(th.Name, strings.TrimSpace(name)) {
			return th.Clone(), true
		}
	}
	return Theme{}, false
}
