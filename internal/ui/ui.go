package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Out receives status lines. Commands writing a document to stdout point it
// at stderr.
var Out io.Writer = os.Stdout

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CA8A04"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
)

// FormatError returns a styled multi-line error message.
func FormatError(title, detail, suggestion string) string {
	out := errorStyle.Render("Error: "+title) + "\n"
	if detail != "" {
		out += "  " + detail + "\n"
	}
	if suggestion != "" {
		out += "  " + hintStyle.Render("Hint: "+suggestion) + "\n"
	}
	return out
}

// SourceDone prints a styled status when a catalog source has loaded.
func SourceDone(name, detail string) {
	msg := successStyle.Render("  OK ") + " " + name
	if detail != "" {
		msg += " " + dimStyle.Render(detail)
	}
	fmt.Fprintln(Out, msg)
}

// SourceSkipped prints a styled status when a catalog source is not enabled.
func SourceSkipped(name string) {
	fmt.Fprintf(Out, "  %s %s\n", dimStyle.Render("--"), dimStyle.Render(name+" (skipped)"))
}

// SourceFailed prints a styled status when a catalog source could not load.
func SourceFailed(name string, err error) {
	fmt.Fprintf(Out, "  %s %s: %v\n", errorStyle.Render("ERR"), name, err)
}

// Summary renders a one-line pair count, e.g. "x86_64: 22 pairs".
func Summary(family string, pairs int) string {
	noun := "pairs"
	if pairs == 1 {
		noun = "pair"
	}
	return fmt.Sprintf("%s %s", boldStyle.Render(family+":"), dimStyle.Render(fmt.Sprintf("%d %s", pairs, noun)))
}

// Success prints a green success message.
func Success(msg string) {
	fmt.Fprintln(Out, successStyle.Render(msg))
}

// Warn prints a yellow warning message.
func Warn(msg string) {
	fmt.Fprintln(Out, warnStyle.Render("Warning: " + msg))
}

// Bold renders text in bold.
func Bold(s string) string {
	return boldStyle.Render(s)
}

// Hint renders text in dim italic.
func Hint(s string) string {
	return hintStyle.Render(s)
}

// ValidationOK prints a green check for a valid field.
func ValidationOK(field, detail string) {
	fmt.Fprintf(Out, "  %s %s: %s\n", successStyle.Render("OK "), field, detail)
}

// ValidationErr prints a red error for an invalid field.
func ValidationErr(field, message, suggestion string) {
	fmt.Fprintf(Out, "  %s %s: %s\n", errorStyle.Render("ERR"), field, message)
	if suggestion != "" {
		fmt.Fprintf(Out, "      %s\n", hintStyle.Render("Hint: "+suggestion))
	}
}
