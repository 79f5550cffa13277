// Package tui is an interactive bubbletea browser over an analysis result.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-sshlens/internal/pipeline"
	"go-sshlens/internal/report"
	"go-sshlens/pkg/types"
)

type viewMode int

const (
	viewList viewMode = iota
	viewDetail
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	attackStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

type model struct {
	paths      []string
	opts       pipeline.Options
	reportPath string

	loading  bool
	showHelp bool
	mode     viewMode

	res      *types.Result
	selected int

	statusLine string
}

func initialModel(paths []string, opts pipeline.Options, reportPath string) model {
	return model{
		paths:      paths,
		opts:       opts,
		reportPath: reportPath,
		loading:    true,
		showHelp:   true,
		mode:       viewList,
		statusLine: fmt.Sprintf("analyzing %d file(s)...", len(paths)),
	}
}

type resultMsg struct {
	res     *types.Result
	elapsed time.Duration
}
type savedMsg struct{ path string }
type errMsg struct{ err error }

func analyzeCmd(paths []string, opts pipeline.Options) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		res, err := pipeline.Run(paths, opts, nil)
		if err != nil {
			return errMsg{err: err}
		}
		return resultMsg{res: res, elapsed: time.Since(start)}
	}
}

func saveReportCmd(res *types.Result, path string) tea.Cmd {
	return func() tea.Msg {
		if err := report.WriteFile(path, res); err != nil {
			return errMsg{err: err}
		}
		return savedMsg{path: path}
	}
}

func (m model) Init() tea.Cmd {
	return analyzeCmd(m.paths, m.opts)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (m model) domainCount() int {
	if m.res == nil {
		return 0
	}
	return len(m.res.Domains)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch x := msg.(type) {

	case tea.KeyMsg:
		k := x.String()

		switch k {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "h", "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "r":
			if m.loading {
				return m, nil
			}
			m.loading = true
			m.statusLine = "re-analyzing..."
			return m, analyzeCmd(m.paths, m.opts)
		case "s":
			if m.res == nil {
				m.statusLine = "nothing to save yet"
				return m, nil
			}
			m.statusLine = "saving " + m.reportPath + "..."
			return m, saveReportCmd(m.res, m.reportPath)
		case "esc":
			if m.mode == viewDetail {
				m.mode = viewList
			}
			return m, nil
		case "enter":
			if m.domainCount() == 0 {
				return m, nil
			}
			if m.mode == viewList {
				m.mode = viewDetail
			} else {
				m.mode = viewList
			}
			return m, nil
		}

		if m.mode == viewList && m.domainCount() > 0 {
			last := m.domainCount() - 1
			switch k {
			case "up", "k":
				m.selected = clamp(m.selected-1, 0, last)
			case "down", "j":
				m.selected = clamp(m.selected+1, 0, last)
			case "g":
				m.selected = 0
			case "G":
				m.selected = last
			}
			return m, nil
		}

	case resultMsg:
		m.loading = false
		m.res = x.res
		m.selected = clamp(m.selected, 0, max(m.domainCount()-1, 0))
		m.statusLine = resultStatus(x.res.Diagnostics, x.elapsed)
		return m, nil

	case savedMsg:
		m.statusLine = "saved " + x.path
		return m, nil

	case errMsg:
		m.loading = false
		m.statusLine = "error: " + x.err.Error()
		return m, nil
	}

	return m, nil
}

func resultStatus(d types.Diagnostics, elapsed time.Duration) string {
	s := fmt.Sprintf("analyzed %d lines in %s", d.LinesRead, elapsed.Round(time.Millisecond))
	if d.TimestampErrors > 0 {
		s += fmt.Sprintf(", %d bad timestamp(s)", d.TimestampErrors)
	}
	if n := len(d.SkippedFiles); n > 0 {
		s += fmt.Sprintf(", %d file(s) skipped", n)
	}
	return s
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("sshlens: failed SSH logins"))
	b.WriteString("\n")
	if m.res != nil {
		fmt.Fprintf(&b, "domains: %d | total hackers: %d | most targeted: %s (%d)\n",
			len(m.res.Domains), m.res.TotalHackers, m.res.MostTargetedAccount, m.res.MostTargetedAttempts)
		d := m.res.Diagnostics
		fmt.Fprintf(&b, "files: %d | lines: %d | matched: %d | bad timestamps: %d | oversized: %d\n",
			d.FilesRead, d.LinesRead, d.LinesMatched, d.TimestampErrors, d.OversizedLines)
		for _, f := range d.SkippedFiles {
			b.WriteString(warnStyle.Render("skipped " + f.Path + ": " + f.Error))
			b.WriteString("\n")
		}
	}
	if m.statusLine != "" {
		b.WriteString(mutedStyle.Render(m.statusLine))
		b.WriteString("\n")
	}
	b.WriteString("--------------------------------------------------\n")

	if m.showHelp {
		b.WriteString("keys\n")
		b.WriteString("  q: quit   r: re-analyze   s: save report   h/?: toggle help\n")
		b.WriteString("  ↑/k ↓/j: move   g/G: top/bottom   enter: toggle detail   esc: back\n")
		b.WriteString("--------------------------------------------------\n")
	}

	if m.res == nil || len(m.res.Domains) == 0 {
		if m.loading {
			return b.String()
		}
		b.WriteString("(no failed password lines found)\n")
		return b.String()
	}

	if m.mode == viewList {
		b.WriteString("domains (first seen order)\n\n")
		for i, d := range m.res.Domains {
			cursor := "  "
			line := fmt.Sprintf("%-30s attempts %6d  ips %4d  attackers %3d", d.Domain, d.Attempts, d.UniqueAttackerCount, len(d.Attackers))
			if i == m.selected {
				cursor = "> "
				line = selectedStyle.Render(line)
			}
			b.WriteString(cursor + line + "\n")
		}
		return b.String()
	}

	d := m.res.Domains[m.selected]
	fmt.Fprintf(&b, "DOMAIN: %s  (attempts %d, unique ips %d)\n\n", d.Domain, d.Attempts, d.UniqueAttackerCount)
	if len(d.Attackers) == 0 {
		fmt.Fprintf(&b, "no IP exceeded %d attempts\n", m.res.Threshold)
		return b.String()
	}
	for _, a := range d.Attackers {
		fmt.Fprintf(&b, "  %-15s %s  %s\n", a.IP,
			attackStyle.Render(fmt.Sprintf("%5d attempts", a.Attempts)),
			report.FormatDuration(a.DurationSeconds))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "longest attack window: %s\n", d.LongestDurationIP)
	fmt.Fprintf(&b, "most failed attempts:  %s\n", d.MostAttemptsIP)
	return b.String()
}

// Run opens the browser on paths and blocks until the user quits.
func Run(paths []string, opts pipeline.Options, reportPath string) error {
	p := tea.NewProgram(initialModel(paths, opts, reportPath), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
