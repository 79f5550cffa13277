package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// loggen is a development helper that writes a synthetic sshd auth log for
// trying sshlens out. It is not part of the sshlens binary.

type attacker struct {
	ip       string
	host     string
	attempts int
	gap      time.Duration
}

var (
	hosts    = []string{"web01", "db01", "mail", "bastion"}
	accounts = []string{"root", "admin", "oracle", "test", "ubuntu", "postgres", "git"}
	sources  = []string{"203.0.113.7", "198.51.100.23", "192.0.2.44", "185.220.101.3", "45.155.205.9"}
	noise    = []string{
		"%s %s sshd[%d]: Accepted publickey for deploy from 10.0.0.%d port %d ssh2: ED25519 SHA256:q1w2e3",
		"%s %s sshd[%d]: Connection closed by 10.0.0.%d port %d [preauth]",
		"%s %s sshd[%d]: Received disconnect from 10.0.0.%d port %d:11: Bye Bye [preauth]",
	}
)

var (
	outPath string
	seed    int64
	start   string
)

var rootCmd = &cobra.Command{
	Use:   "loggen",
	Short: "Write a synthetic sshd auth log (development helper)",
	Long: `loggen writes failed-password bursts from a few fixed source IPs mixed with
ordinary sshd noise. The same --seed always produces the same file.

Example:
  loggen -o secure.log --seed 7 && sshlens analyze secure.log`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return generate(cmd)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&outPath, "output", "o", "secure.log", "Output file")
	rootCmd.Flags().Int64Var(&seed, "seed", 1, "Random seed")
	rootCmd.Flags().StringVar(&start, "start", "Mar 5 08:00:00", "First timestamp (syslog format)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func generate(cmd *cobra.Command) error {
	t0, err := time.Parse(time.Stamp, start)
	if err != nil {
		return fmt.Errorf("invalid --start: %w", err)
	}

	rng := rand.New(rand.NewSource(seed))

	var attackers []attacker
	for _, ip := range sources {
		attackers = append(attackers, attacker{
			ip:       ip,
			host:     hosts[rng.Intn(len(hosts))],
			attempts: 5 + rng.Intn(40),
			gap:      time.Duration(1+rng.Intn(90)) * time.Second,
		})
	}

	fp, err := os.Create(outPath)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(fp)

	now := t0
	lines := 0
	for active := true; active; {
		active = false
		for i := range attackers {
			a := &attackers[i]
			if a.attempts == 0 {
				continue
			}
			active = true
			a.attempts--

			user := accounts[rng.Intn(len(accounts))]
			invalid := ""
			if user != "root" && rng.Intn(2) == 0 {
				invalid = "invalid user "
			}
			fmt.Fprintf(w, "%s %s sshd[%d]: Failed password for %s%s from %s port %d ssh2\n",
				now.Format(time.Stamp), a.host, 1000+rng.Intn(9000), invalid, user, a.ip, 30000+rng.Intn(30000))
			lines++

			if rng.Intn(4) == 0 {
				tmpl := noise[rng.Intn(len(noise))]
				fmt.Fprintf(w, tmpl+"\n", now.Format(time.Stamp), hosts[rng.Intn(len(hosts))],
					1000+rng.Intn(9000), 2+rng.Intn(200), 30000+rng.Intn(30000))
				lines++
			}
			now = now.Add(a.gap)
		}
	}

	if err := w.Flush(); err != nil {
		fp.Close()
		return err
	}
	if err := fp.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d lines to %s\n", lines, outPath)
	return nil
}
