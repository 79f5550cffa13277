package detector

import (
	"slices"
	"sort"
	"time"

	"go-sshlens/internal/aggregator"
	"go-sshlens/pkg/types"
)

// SSHBruteForceDetector classifies aggregated failed-password attempts.
// An IP is an attacker of a domain once its attempt count for that domain
// is strictly greater than threshold.
type SSHBruteForceDetector struct {
	threshold int
}

func NewSSHBruteForceDetector(threshold int) *SSHBruteForceDetector {
	return &SSHBruteForceDetector{threshold: threshold}
}

func (d *SSHBruteForceDetector) Threshold() int { return d.threshold }

// Qualifies reports whether attempts crosses the threshold.
func (d *SSHBruteForceDetector) Qualifies(attempts int) bool {
	return attempts > d.threshold
}

// Classify builds per-domain summaries and global rankings from agg.
// Every max selection keeps the first candidate in first-seen order on ties.
func (d *SSHBruteForceDetector) Classify(agg *aggregator.Aggregator) *types.Result {
	res := &types.Result{Threshold: d.threshold}

	for _, domain := range agg.Domains() {
		ips := agg.IPs(domain)
		dr := types.DomainReport{
			Domain:              domain,
			UniqueAttackerCount: len(ips),
			Attempts:            agg.DomainAttempts(domain),
		}

		var longest, most *types.IPSummary
		for _, ip := range ips {
			st := agg.Stats(domain, ip)
			if !d.Qualifies(st.Attempts) {
				continue
			}
			dr.Attackers = append(dr.Attackers, types.IPSummary{
				IP: ip,
				AttackerSummary: types.AttackerSummary{
					Attempts:        st.Attempts,
					DurationSeconds: attackWindow(st.Timestamps),
				},
			})
		}
		for i := range dr.Attackers {
			cur := &dr.Attackers[i]
			if longest == nil || cur.DurationSeconds > longest.DurationSeconds {
				longest = cur
			}
			if most == nil || cur.Attempts > most.Attempts {
				most = cur
			}
		}
		if longest != nil {
			dr.LongestDurationIP = longest.IP
		}
		if most != nil {
			dr.MostAttemptsIP = most.IP
		}

		res.Domains = append(res.Domains, dr)
		res.TotalHackers += dr.UniqueAttackerCount
	}

	for _, user := range agg.Accounts() {
		if n := agg.AccountAttempts(user); n > res.MostTargetedAttempts {
			res.MostTargetedAccount = user
			res.MostTargetedAttempts = n
		}
	}

	res.DomainRanking = rankDomains(res.Domains)
	return res
}

// attackWindow is the span between the earliest and latest timestamp in
// whole seconds. The input is not modified.
func attackWindow(ts []time.Time) int64 {
	if len(ts) < 2 {
		return 0
	}
	sorted := slices.Clone(ts)
	slices.SortFunc(sorted, func(a, b time.Time) int { return a.Compare(b) })
	return int64(sorted[len(sorted)-1].Sub(sorted[0]) / time.Second)
}

func rankDomains(domains []types.DomainReport) []types.DomainRank {
	ranking := make([]types.DomainRank, 0, len(domains))
	for _, d := range domains {
		ranking = append(ranking, types.DomainRank{
			Domain:              d.Domain,
			Attempts:            d.Attempts,
			UniqueAttackerCount: d.UniqueAttackerCount,
		})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Attempts > ranking[j].Attempts
	})
	return ranking
}
