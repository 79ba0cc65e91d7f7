package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"yashubustudio/admatrix/admatrix"
)

const previewLimit = 20

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	keyStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func printPreview(out io.Writer, results []admatrix.Result) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, titleStyle.Render("==== Classification preview ===="))
	for i, r := range results {
		if i == previewLimit {
			fmt.Fprintf(out, "... %d more\n", len(results)-previewLimit)
			break
		}
		fmt.Fprintf(out, "%d. %s\n", r.AdID, summarizeText(r.RawText))
		if r.Failed() {
			fmt.Fprintf(out, "    %s %s\n", keyStyle.Render("error:"), errorStyle.Render(r.ErrorMessage))
			continue
		}
		for _, f := range []struct {
			key   string
			value *string
		}{
			{"concept:", r.Concept},
			{"trigger:", r.Trigger},
			{"persona:", r.DriverPersona},
			{"format:", r.Format},
			{"hook:", r.HookType},
		} {
			fmt.Fprintf(out, "    %s %s\n", keyStyle.Render(fmt.Sprintf("%-9s", f.key)), deref(f.value))
		}
	}
}

func summarizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return "(empty text)"
	}
	runes := []rune(text)
	if len(runes) > 60 {
		return string(runes[:60]) + "…"
	}
	return text
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
