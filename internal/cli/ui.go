package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Palette
// =============================================================================

// The ANSI 256 palette shared by every command. Crate names and headings
// lean cyan, sources and paths stay gray, so listings scan by color.
var (
	colorCyan   = lipgloss.Color("36")  // headings, crate names
	colorGreen  = lipgloss.Color("35")  // success marks, cache hits
	colorYellow = lipgloss.Color("220") // warnings
	colorRed    = lipgloss.Color("167") // failures
	colorBlue   = lipgloss.Color("75")  // links, commands
	colorWhite  = lipgloss.Color("255") // primary values
	colorGray   = lipgloss.Color("245") // labels
	colorDim    = lipgloss.Color("240") // secondary text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle renders section headings, like the crate header in info.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight marks workspace members and picker selections.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleLink renders repository, homepage, and docs URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim de-emphasizes sources, separators, and hints.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue renders the value half of key-value rows.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber renders counts, such as crates.io download totals.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning renders warning text after its icon.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// Status line icons and their colors.
var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed    = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// Status and progress lines go to stderr so stdout carries only data:
// listings, key-value detail, and DOT source survive piping unharmed.

func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, styleIconError.Render(iconError)+" "+msg)
}

func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail indents a secondary line under the preceding status line.
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, "  "+StyleDim.Render(msg))
}

// printFile reports a path that was just written.
func printFile(path string) {
	fmt.Fprintln(os.Stderr, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(os.Stderr, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(os.Stderr)
}

// =============================================================================
// Data Output
// =============================================================================

// printKeyValue prints a labeled value on stdout. Key-value rows are data,
// not status.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(14)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printStats summarizes a resolved graph: crate and edge counts plus whether
// the metadata came from the cache.
func printStats(crateCount, depCount int, cached bool) {
	var parts []string
	if crateCount > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d crates", crateCount)))
	}
	if depCount > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d dependency edges", depCount)))
	}
	if cached {
		parts = append(parts, styleCached.Render(iconCached))
	} else {
		parts = append(parts, styleComputed.Render(iconFresh))
	}
	fmt.Fprintln(os.Stderr, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}
