// Package ux provides terminal styling for jvdl banners and status lines.
package ux

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	ColorAlert   = lipgloss.Color("1") // red background for destructive warnings
	ColorDry     = lipgloss.Color("2") // green background for dry mode
	ColorInk     = lipgloss.Color("0")
	ColorSuccess = lipgloss.Color("#2CD7C7")
	ColorWarning = lipgloss.Color("#F4D03F")
	ColorError   = lipgloss.Color("#E74C3C")
)

// Styles provides pre-configured lipgloss styles
var Styles = struct {
	Alert   lipgloss.Style
	Dry     lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}{
	Alert:   lipgloss.NewStyle().Background(ColorAlert).Foreground(ColorInk),
	Dry:     lipgloss.NewStyle().Background(ColorDry).Foreground(ColorInk),
	Success: lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true),
	Warning: lipgloss.NewStyle().Foreground(ColorWarning),
	Error:   lipgloss.NewStyle().Foreground(ColorError).Bold(true),
}

// Alert renders a destructive-action warning.
func Alert(text string) string { return Styles.Alert.Render(text) }

// DryMode renders the dry-mode banner.
func DryMode(text string) string { return Styles.Dry.Render(text) }

// Success renders a completion line.
func Success(text string) string { return Styles.Success.Render("✓ " + text) }

// Warning renders a non-fatal problem.
func Warning(text string) string { return Styles.Warning.Render("⚠ " + text) }

// Failure renders a fatal problem.
func Failure(text string) string { return Styles.Error.Render("✗ " + text) }
