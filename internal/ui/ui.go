// Package ui renders sync reports and status lines for the terminal.
//
// Rendering is pure: functions take report data and return strings,
// so the synchronizer can be tested without capturing output. Colors
// degrade automatically on dumb terminals and when NO_COLOR is set.
package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Detect the color profile once from the environment. This honors
	// NO_COLOR and TERM=dumb before anything renders.
	lipgloss.SetColorProfile(termenv.EnvColorProfile())
}

var (
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

// RenderPass renders s in the success color.
func RenderPass(s string) string { return passStyle.Render(s) }

// RenderFail renders s in the failure color.
func RenderFail(s string) string { return failStyle.Render(s) }

// RenderWarn renders s in the warning color.
func RenderWarn(s string) string { return warnStyle.Render(s) }

// RenderAccent renders s highlighted, used for app and object names.
func RenderAccent(s string) string { return accentStyle.Render(s) }

// RenderDim renders s de-emphasized, used for already-present outcomes.
func RenderDim(s string) string { return dimStyle.Render(s) }
