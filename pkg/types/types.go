// Package types contains the result types shared by sshlens packages.
package types

// DefaultThreshold is the attempt count an IP must exceed to be reported
// as an attacker of a domain.
const DefaultThreshold = 13

// AttackerSummary describes one qualifying IP against one domain.
type AttackerSummary struct {
	Attempts        int   `json:"attempts"`
	DurationSeconds int64 `json:"duration_seconds"`
}

// IPSummary pairs an IP with its AttackerSummary.
type IPSummary struct {
	IP string `json:"ip"`
	AttackerSummary
}

// DomainReport is the classified view of a single domain.
type DomainReport struct {
	Domain string `json:"domain"`

	// Attackers lists qualifying IPs in first-seen order.
	Attackers         []IPSummary `json:"attackers"`
	LongestDurationIP string      `json:"longest_duration_ip,omitempty"`
	MostAttemptsIP    string      `json:"most_attempts_ip,omitempty"`

	// UniqueAttackerCount counts every IP observed for the domain,
	// qualifying or not.
	UniqueAttackerCount int `json:"unique_attacker_count"`
	Attempts            int `json:"attempts"`
}

// Summary returns the IP -> AttackerSummary mapping for the domain.
func (d DomainReport) Summary() map[string]AttackerSummary {
	m := make(map[string]AttackerSummary, len(d.Attackers))
	for _, a := range d.Attackers {
		m[a.IP] = a.AttackerSummary
	}
	return m
}

// Attacker looks up a qualifying IP.
func (d DomainReport) Attacker(ip string) (AttackerSummary, bool) {
	for _, a := range d.Attackers {
		if a.IP == ip {
			return a.AttackerSummary, true
		}
	}
	return AttackerSummary{}, false
}

// DomainRank is one row of the domain ranking.
type DomainRank struct {
	Domain              string `json:"domain"`
	Attempts            int    `json:"attempts"`
	UniqueAttackerCount int    `json:"unique_attacker_count"`
}

// Diagnostics tallies what happened while reading input.
type Diagnostics struct {
	FilesRead        int           `json:"files_read"`
	LinesRead        int           `json:"lines_read"`
	LinesMatched     int           `json:"lines_matched"`
	TimestampErrors  int           `json:"timestamp_errors"`
	MalformedMatches int           `json:"malformed_matches"`
	OversizedLines   int           `json:"oversized_lines"`
	SkippedFiles     []SkippedFile `json:"skipped_files,omitempty"`
}

// SkippedFile records an input that could not be read.
type SkippedFile struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Result is everything one run derives from its input.
type Result struct {
	Threshold int `json:"threshold"`

	// Domains holds every observed domain in first-seen order, including
	// those without qualifying attackers.
	Domains []DomainReport `json:"domains"`

	MostTargetedAccount  string `json:"most_targeted_account"`
	MostTargetedAttempts int    `json:"most_targeted_attempts"`

	DomainRanking []DomainRank `json:"domain_ranking"`

	// TotalHackers sums UniqueAttackerCount over all domains, so it counts
	// every observed IP per domain, not only qualifying ones.
	TotalHackers int `json:"total_hackers"`

	Diagnostics Diagnostics `json:"diagnostics"`
}

// Domain returns the report for name.
func (r *Result) Domain(name string) (DomainReport, bool) {
	for _, d := range r.Domains {
		if d.Domain == name {
			return d, true
		}
	}
	return DomainReport{}, false
}
