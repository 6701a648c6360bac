package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ricekit/ricekit/internal/engine"
	"github.com/ricekit/ricekit/internal/model"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	skipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	detailIndent = "    "
)

// renderApplyReport builds the per-module outcome summary printed after an
// apply run.
func renderApplyReport(theme string, report engine.ApplyReport) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("theme %s (%s)", theme, report.Duration.Round(time.Millisecond))))
	b.WriteString("\n")

	for _, phase := range report.Phases {
		if len(phase.Pipelines) == 0 {
			continue
		}
		b.WriteString(dimStyle.Render(phase.Event))
		b.WriteString("\n")
		for i := range phase.Pipelines {
			b.WriteString(renderPipeline(&phase.Pipelines[i]))
		}
	}

	if failed := collectFailedModules(report); len(failed) > 0 {
		b.WriteString(failStyle.Render(fmt.Sprintf("failed modules: %s", strings.Join(failed, ", "))))
		b.WriteString("\n")
	}

	return b.String()
}

// renderEventReport summarizes a single fired event, used by watch and
// module install output.
func renderEventReport(report model.EventReport) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%s)", report.Event, report.Duration.Round(time.Millisecond))))
	b.WriteString("\n")
	for i := range report.Pipelines {
		b.WriteString(renderPipeline(&report.Pipelines[i]))
	}
	return b.String()
}

func renderPipeline(run *model.PipelineResult) string {
	completed, failed, skipped := run.Counts()

	var marker, note string
	switch {
	case run.Failed():
		marker = failStyle.Render("✗")
		note = fmt.Sprintf("%d completed, %d failed, %d skipped", completed, failed, skipped)
	case run.Gated():
		marker = skipStyle.Render("−")
		note = "gated"
	default:
		marker = okStyle.Render("✓")
		note = fmt.Sprintf("%d completed", completed)
	}

	line := fmt.Sprintf("  %s %s  %s\n", marker, run.Module, dimStyle.Render(note))

	if failure := run.FirstFailure(); failure != nil {
		line += fmt.Sprintf("%s%s\n", detailIndent, failStyle.Render(failure.Description))
		if failure.Error != nil {
			line += fmt.Sprintf("%s%s\n", detailIndent, dimStyle.Render(failure.Error.Error()))
		}
	}

	return line
}

func collectFailedModules(report engine.ApplyReport) []string {
	seen := map[string]bool{}
	var names []string
	for i := range report.Phases {
		for _, name := range report.Phases[i].FailedModules() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
