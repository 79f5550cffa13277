package normalizer

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrNoMatch is returned by ParseLine for lines that are not sshd
// "Failed password" messages. It is not a failure.
var ErrNoMatch = errors.New("line does not match failed-password pattern")

// TimestampError reports a matched line whose syslog timestamp could not
// be parsed.
type TimestampError struct {
	Raw string
	Err error
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("bad timestamp %q: %v", e.Raw, e.Err)
}

func (e *TimestampError) Unwrap() error { return e.Err }

// Event is one failed SSH password attempt.
type Event struct {
	TS     time.Time
	Domain string
	User   string
	IP     string
	Port   int
}

// Mar  5 10:00:01 host1 sshd[123]: Failed password for invalid user admin from 10.0.0.5 port 22 ssh2
// Mar 5 2024 10:00:01 host1 sshd[123]: Failed password for root from 10.0.0.5 port 22 ssh2
var failedRe = regexp.MustCompile(
	`\b(?P<month>\w{3})\s+(?P<day>\d{1,2})\s+(?:(?P<year>\d{4})\s+)?(?P<clock>\d{1,2}:\d{2}:\d{2})\s+(?P<domain>\S+)\s.*Failed password for (?:invalid user )?(?P<user>\S+) from (?P<ip>\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}) port (?P<port>\d+) ssh2`,
)

var (
	idxMonth  = failedRe.SubexpIndex("month")
	idxDay    = failedRe.SubexpIndex("day")
	idxYear   = failedRe.SubexpIndex("year")
	idxClock  = failedRe.SubexpIndex("clock")
	idxDomain = failedRe.SubexpIndex("domain")
	idxUser   = failedRe.SubexpIndex("user")
	idxIP     = failedRe.SubexpIndex("ip")
	idxPort   = failedRe.SubexpIndex("port")
)

const stampLayout = "Jan 2 2006 15:04:05"

// Parser turns raw auth-log lines into Events. Syslog timestamps carry no
// year, so the parser binds a fixed one; entries spanning a real year
// boundary will produce wrong durations.
type Parser struct {
	year int
}

func NewParser(year int) *Parser {
	return &Parser{year: year}
}

func (p *Parser) Year() int { return p.year }

// ParseLine returns ErrNoMatch for unrelated lines and a *TimestampError
// when the line matches but its timestamp does not parse.
func (p *Parser) ParseLine(line string) (Event, error) {
	m := failedRe.FindStringSubmatch(line)
	if m == nil {
		return Event{}, ErrNoMatch
	}

	year := strconv.Itoa(p.year)
	if m[idxYear] != "" {
		year = m[idxYear]
	}
	raw := strings.Join([]string{m[idxMonth], m[idxDay], year, m[idxClock]}, " ")
	ts, err := time.Parse(stampLayout, raw)
	if err != nil {
		return Event{}, &TimestampError{Raw: raw, Err: err}
	}

	port, err := strconv.Atoi(m[idxPort])
	if err != nil {
		return Event{}, fmt.Errorf("bad port %q: %w", m[idxPort], err)
	}

	return Event{
		TS:     ts,
		Domain: m[idxDomain],
		User:   m[idxUser],
		IP:     m[idxIP],
		Port:   port,
	}, nil
}
