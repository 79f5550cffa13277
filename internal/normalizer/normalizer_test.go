package normalizer

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	p := NewParser(2024)

	t.Run("invalid user variant", func(t *testing.T) {
		ev, err := p.ParseLine("Mar 5 10:00:01 host1 sshd[123]: Failed password for invalid user admin from 10.0.0.5 port 22 ssh2")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, time.March, 5, 10, 0, 1, 0, time.UTC), ev.TS)
		assert.Equal(t, "host1", ev.Domain)
		assert.Equal(t, "admin", ev.User)
		assert.Equal(t, "10.0.0.5", ev.IP)
		assert.Equal(t, 22, ev.Port)
	})

	t.Run("valid user variant with padded day", func(t *testing.T) {
		ev, err := p.ParseLine("Jan  7 23:59:59 web01 sshd[9]: Failed password for root from 192.168.1.10 port 51234 ssh2")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, time.January, 7, 23, 59, 59, 0, time.UTC), ev.TS)
		assert.Equal(t, "web01", ev.Domain)
		assert.Equal(t, "root", ev.User)
		assert.Equal(t, 51234, ev.Port)
	})

	t.Run("account names with punctuation are kept whole", func(t *testing.T) {
		for _, user := range []string{"test-user", "svc.backup", "j.doe@corp"} {
			ev, err := p.ParseLine("Mar 5 10:00:01 host1 sshd[123]: Failed password for invalid user " + user + " from 10.0.0.5 port 22 ssh2")
			require.NoError(t, err, user)
			assert.Equal(t, user, ev.User)
		}
	})

	t.Run("year in line wins over configured year", func(t *testing.T) {
		ev, err := p.ParseLine("Dec 31 2019 08:00:00 mail sshd[1]: Failed password for test from 1.2.3.4 port 2200 ssh2")
		require.NoError(t, err)
		assert.Equal(t, 2019, ev.TS.Year())
		assert.Equal(t, "mail", ev.Domain)
	})

	t.Run("surrounding content is ignored", func(t *testing.T) {
		ev, err := p.ParseLine("<38>Mar 5 10:00:01 host1 sshd[123]: Failed password for oracle from 10.0.0.6 port 22 ssh2 [trailing]")
		require.NoError(t, err)
		assert.Equal(t, "oracle", ev.User)
		assert.Equal(t, "10.0.0.6", ev.IP)
	})

	t.Run("non matching lines", func(t *testing.T) {
		lines := []string{
			"",
			"Mar 5 10:00:01 host1 sshd[123]: Accepted password for root from 10.0.0.5 port 22 ssh2",
			"Mar 5 10:00:01 host1 sshd[123]: Failed publickey for root from 10.0.0.5 port 22 ssh2",
			"Mar 5 10:00:01 host1 sshd[123]: Failed password for root from 10.0.0.5 port 22",
			"Mar 5 10:00:01 host1 sshd[123]: Failed password for root from fe80::1 port 22 ssh2",
			"host1 sshd[123]: Failed password for root from 10.0.0.5 port 22 ssh2",
		}
		for _, line := range lines {
			_, err := p.ParseLine(line)
			assert.ErrorIs(t, err, ErrNoMatch, line)
		}
	})

	t.Run("bad timestamp is a TimestampError", func(t *testing.T) {
		_, err := p.ParseLine("Feb 30 10:00:01 host1 sshd[123]: Failed password for root from 10.0.0.5 port 22 ssh2")
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrNoMatch))

		var tsErr *TimestampError
		require.ErrorAs(t, err, &tsErr)
		assert.Equal(t, "Feb 30 2024 10:00:01", tsErr.Raw)
	})

	t.Run("unknown month is a TimestampError", func(t *testing.T) {
		_, err := p.ParseLine("Foo 3 10:00:01 host1 sshd[123]: Failed password for root from 10.0.0.5 port 22 ssh2")
		var tsErr *TimestampError
		assert.ErrorAs(t, err, &tsErr)
	})
}

func TestParserYear(t *testing.T) {
	assert.Equal(t, 1999, NewParser(1999).Year())
}
