// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"todocli/internal/api"
)

const (
	// CheckboxOpen and CheckboxDone mark completion state in list output.
	CheckboxOpen = "[ ]"
	CheckboxDone = "[x]"
)

var (
	// doneStyle dims completed tasks. Renders as plain text when the
	// output is not a color terminal.
	doneStyle = lipgloss.NewStyle().Faint(true).Strikethrough(true)

	// labelStyle is used for field labels in detail output.
	labelStyle = lipgloss.NewStyle().Bold(true)
)

// FormatTask formats one task line for the list command.
// Format: "{N:>4}  {CHECKBOX}  {TITLE}\n"
func FormatTask(w io.Writer, num int, task api.Task) {
	title := normalizeTitle(task.Title)
	checkbox := CheckboxOpen
	if task.Completed {
		checkbox = CheckboxDone
		title = doneStyle.Render(title)
	}
	fmt.Fprintf(w, "%4d  %s  %s\n", num, checkbox, title)
}

// FormatTaskDetail formats the full representation of a task for the
// show command.
func FormatTaskDetail(w io.Writer, task api.Task) {
	status := "open"
	if task.Completed {
		status = "completed"
	}
	fmt.Fprintf(w, "%s %d\n", labelStyle.Render("id:"), task.ID)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("title:"), normalizeTitle(task.Title))
	if task.Description != "" {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("description:"), task.Description)
	}
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("status:"), status)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	// Replace newlines with spaces
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	// Trim and check for empty
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
