// Package aggregator accumulates failed-login events per domain and source IP.
package aggregator

import (
	"time"

	"go-sshlens/internal/normalizer"
)

// AttackerStats holds every failed attempt one IP made against one domain.
// Attempts always equals len(Timestamps).
type AttackerStats struct {
	Attempts   int
	Timestamps []time.Time
}

type domainState struct {
	attempts int
	ips      []string // first-seen order
	stats    map[string]*AttackerStats
}

// Aggregator owns all in-memory state of a run. It is not safe for
// concurrent use; callers feed it from a single goroutine.
type Aggregator struct {
	domains     map[string]*domainState
	domainOrder []string

	accounts     map[string]int
	accountOrder []string

	events int
}

func New() *Aggregator {
	return &Aggregator{
		domains:  make(map[string]*domainState),
		accounts: make(map[string]int),
	}
}

// Ingest records one event.
func (a *Aggregator) Ingest(ev normalizer.Event) {
	d, ok := a.domains[ev.Domain]
	if !ok {
		d = &domainState{stats: make(map[string]*AttackerStats)}
		a.domains[ev.Domain] = d
		a.domainOrder = append(a.domainOrder, ev.Domain)
	}

	s, ok := d.stats[ev.IP]
	if !ok {
		s = &AttackerStats{}
		d.stats[ev.IP] = s
		d.ips = append(d.ips, ev.IP)
	}
	s.Attempts++
	s.Timestamps = append(s.Timestamps, ev.TS)
	d.attempts++

	if _, ok := a.accounts[ev.User]; !ok {
		a.accountOrder = append(a.accountOrder, ev.User)
	}
	a.accounts[ev.User]++

	a.events++
}

// Domains returns domains in the order they were first observed.
func (a *Aggregator) Domains() []string {
	return append([]string(nil), a.domainOrder...)
}

// IPs returns the source IPs seen for domain, in first-seen order.
func (a *Aggregator) IPs(domain string) []string {
	d, ok := a.domains[domain]
	if !ok {
		return nil
	}
	return append([]string(nil), d.ips...)
}

// Stats returns the stats for (domain, ip), or nil if the pair was never seen.
// The returned value is owned by the aggregator and must not be modified.
func (a *Aggregator) Stats(domain, ip string) *AttackerStats {
	d, ok := a.domains[domain]
	if !ok {
		return nil
	}
	return d.stats[ip]
}

func (a *Aggregator) DomainAttempts(domain string) int {
	if d, ok := a.domains[domain]; ok {
		return d.attempts
	}
	return 0
}

// Accounts returns targeted user names in first-seen order.
func (a *Aggregator) Accounts() []string {
	return append([]string(nil), a.accountOrder...)
}

func (a *Aggregator) AccountAttempts(user string) int {
	return a.accounts[user]
}

// Events is the number of events ingested so far.
func (a *Aggregator) Events() int { return a.events }
