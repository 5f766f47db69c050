package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// Summary renders the end-of-run console report.
func Summary(res *RunResult) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Codebase Explainer: %s", res.Project)))
	b.WriteString("\n")

	rows := []struct {
		key   string
		value string
	}{
		{"backend", res.Backend},
		{"files scanned", fmt.Sprintf("%d (%d skipped)", res.FilesScanned, res.FilesSkipped)},
		{"module graph", fmt.Sprintf("%d nodes, %d edges", res.ModuleNodes, res.ModuleEdges)},
		{"class graph", fmt.Sprintf("%d nodes, %d edges", res.ClassNodes, res.ClassEdges)},
		{"format", res.Format},
		{"duration", res.Duration.Round(time.Millisecond).String()},
	}
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(row.key+":"), row.value))
	}

	b.WriteString(okStyle.Render(fmt.Sprintf("✔ All artefacts in %s", res.OutputDir)))
	b.WriteString("\n")
	return b.String()
}
