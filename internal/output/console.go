// Package output provides console and JSON renderings of a Result.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-sshlens/internal/report"
	"go-sshlens/pkg/types"
)

// Styles for terminal output.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14")).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("240"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// Summary renders every aggregate of res for the terminal.
func Summary(res *types.Result, reportPath string) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("SSH Failed Login Analysis"))
	sb.WriteString("\n")
	if reportPath != "" {
		sb.WriteString(mutedStyle.Render("Report saved to " + reportPath))
		sb.WriteString("\n")
	}

	d := res.Diagnostics
	sb.WriteString(fmt.Sprintf("Files: %d  Lines: %d  Matched: %d  Bad timestamps: %s\n",
		d.FilesRead, d.LinesRead, d.LinesMatched, countStyle(d.TimestampErrors).Render(fmt.Sprint(d.TimestampErrors))))
	if d.OversizedLines > 0 {
		sb.WriteString(failStyle.Render(fmt.Sprintf("Oversized lines skipped: %d", d.OversizedLines)))
		sb.WriteString("\n")
	}
	if len(d.SkippedFiles) > 0 {
		sb.WriteString(failStyle.Render(fmt.Sprintf("Skipped files (%d):", len(d.SkippedFiles))))
		sb.WriteString("\n")
		for _, f := range d.SkippedFiles {
			sb.WriteString(fmt.Sprintf("  %s %s\n", mutedStyle.Render(f.Path+":"), failStyle.Render(f.Error)))
		}
	}

	sb.WriteString(sectionStyle.Render(fmt.Sprintf("Attackers per domain (> %d attempts)", res.Threshold)))
	sb.WriteString("\n")
	shown := false
	for _, dr := range res.Domains {
		if len(dr.Attackers) == 0 {
			continue
		}
		shown = true
		sb.WriteString(headerStyle.Render(" " + dr.Domain + " "))
		sb.WriteString("\n")
		for _, a := range dr.Attackers {
			sb.WriteString(fmt.Sprintf("  %-15s %s attempts  %s\n",
				a.IP, failStyle.Render(fmt.Sprintf("%5d", a.Attempts)), report.FormatDuration(a.DurationSeconds)))
		}
		sb.WriteString(fmt.Sprintf("  longest: %s  most attempts: %s\n",
			warnStyle.Render(dr.LongestDurationIP), warnStyle.Render(dr.MostAttemptsIP)))
	}
	if !shown {
		sb.WriteString(mutedStyle.Render("  (no IP crossed the threshold)"))
		sb.WriteString("\n")
	}

	sb.WriteString(sectionStyle.Render("Domain ranking"))
	sb.WriteString("\n")
	for i, r := range res.DomainRanking {
		sb.WriteString(fmt.Sprintf("  %2d. %-30s %6d attempts  %4d hackers\n", i+1, r.Domain, r.Attempts, r.UniqueAttackerCount))
	}

	account := res.MostTargetedAccount
	if account == "" {
		account = "none"
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Most targeted account: %s (%d attempts)\n", warnStyle.Render(account), res.MostTargetedAttempts))
	sb.WriteString(fmt.Sprintf("Total hackers: %s\n", failStyle.Render(fmt.Sprint(res.TotalHackers))))

	return sb.String()
}

func countStyle(n int) lipgloss.Style {
	if n > 0 {
		return warnStyle
	}
	return mutedStyle
}

// ToJSON renders res as indented JSON.
func ToJSON(res *types.Result) (string, error) {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	return string(b), nil
}
