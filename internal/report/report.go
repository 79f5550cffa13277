// Package report renders a classified Result as the persisted text report.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"go-sshlens/pkg/types"
)

// FormatDuration renders seconds as "H Hour M Minute S Second".
func FormatDuration(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%d Hour %d Minute %d Second", h, m, s)
}

// Render writes the report for res to w. Domains without qualifying
// attackers get no detail section but still appear in the ranking.
func Render(w io.Writer, res *types.Result) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "HACKER ATTEMPTS PER DOMAIN (More than %d failed attempts per day) sorted by attempts:\n", res.Threshold)

	for _, d := range res.Domains {
		if len(d.Attackers) == 0 {
			continue
		}
		fmt.Fprintf(bw, "\nDOMAIN: %s\n", d.Domain)
		for _, a := range d.Attackers {
			fmt.Fprintf(bw, "IP: %s, Failed Attempts: %d, Duration: %s\n",
				a.IP, a.Attempts, FormatDuration(a.DurationSeconds))
		}
		if a, ok := d.Attacker(d.LongestDurationIP); ok {
			fmt.Fprintf(bw, "Longest hacking attempt in %s: %s with %s\n",
				d.Domain, d.LongestDurationIP, FormatDuration(a.DurationSeconds))
		}
		if a, ok := d.Attacker(d.MostAttemptsIP); ok {
			fmt.Fprintf(bw, "Most failed attempts in %s: %s with %d attempts\n",
				d.Domain, d.MostAttemptsIP, a.Attempts)
		}
	}

	account := res.MostTargetedAccount
	if account == "" {
		account = "none"
	}
	fmt.Fprintf(bw, "\nMost targeted account: %s with %d attempts\n", account, res.MostTargetedAttempts)

	fmt.Fprint(bw, "\nDOMAINS TARGETED MOST OFTEN:\n")
	for _, r := range res.DomainRanking {
		fmt.Fprintf(bw, "Domain: %s, Attempts: %d, Hackers: %d\n", r.Domain, r.Attempts, r.UniqueAttackerCount)
	}

	fmt.Fprintf(bw, "\nTotal Hackers: %d\n", res.TotalHackers)

	return bw.Flush()
}

// WriteFile renders res into path, replacing any existing file.
func WriteFile(path string, res *types.Result) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close report %s: %w", path, cerr)
		}
	}()

	if err := Render(f, res); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
