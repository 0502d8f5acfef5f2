// Command `hostq` is an interactive host-resolution workbench.
//
// hostq resolves a hostname/port pair into its network endpoints on a
// dedicated background worker and prints them once the lookup completes.
// Run without arguments it starts an interactive prompt; subcommands cover
// one-shot lookups and the resolution history.
//
// Usage:
//
//	hostq                             - Start the interactive prompt
//	hostq resolve <host> [<port>]     - Resolve a host once and exit
//	hostq history                     - Show recorded resolutions
//	hostq version                     - Show version information
//
// Examples:
//
//	hostq resolve example.com         - Resolve example.com (port 443)
//	hostq resolve example.com 8080    - Resolve example.com (port 8080)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lc/hostq/internal/buildinfo"
	"github.com/lc/hostq/internal/config"
	"github.com/lc/hostq/internal/dnsquery"
	"github.com/lc/hostq/internal/filesys"
	"github.com/lc/hostq/internal/history"
	"github.com/lc/hostq/internal/hostcheck"
	"github.com/lc/hostq/internal/session"
)

const _defaultPort = "443"

func main() {
	cfg, err := config.New().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	root := &cobra.Command{
		Use:   "hostq",
		Short: "Interactive host-resolution workbench",
		Long: `hostq resolves hostnames into their network endpoints on a background
worker, without blocking on the lookup itself. Run without arguments it
starts an interactive prompt driving one resolution at a time.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runPrompt(cfg)
		},
	}

	// ---- version command ----
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("version: %s\n", buildinfo.Version)
			fmt.Printf("commit: %s\n", buildinfo.Commit)
		},
	}

	// ---- resolve command ----
	resolveCmd := &cobra.Command{
		Use:   "resolve <host> [port]",
		Short: "Resolve a host once and exit",
		Long: `Resolve a hostname into its IPv4 and IPv6 endpoints and print them.
The port defaults to 443 when omitted. Successful resolutions are recorded
in the history file.`,
		Example: "hostq resolve example.com 8080",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			host := args[0]
			port := _defaultPort
			if len(args) == 2 {
				port = args[1]
			}
			if err := hostcheck.Hostname(host); err != nil {
				return err
			}
			if err := hostcheck.Port(port); err != nil {
				return err
			}

			return runOnce(cfg, host, port)
		},
	}

	// ---- history command ----
	historyCmd := &cobra.Command{
		Use:     "history",
		Short:   "Show recorded resolutions",
		Example: "hostq history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			hist, err := history.Load(filesys.OS(), cfg.HistoryPath(), cfg.History.Limit)
			if err != nil {
				return err
			}
			renderHistory(hist.Snapshot())
			return nil
		},
	}

	root.AddCommand(resolveCmd, historyCmd, versionCmd)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// newSession wires the configured DNS backend into a fresh session.
func newSession(cfg *config.Config) (*session.Session, error) {
	backend := dnsquery.New(
		cfg.Resolver.Timeout,
		dnsquery.WithResolvers(cfg.Resolver.Addresses),
	)
	return session.New(backend)
}

// runOnce performs a single resolve/wait cycle and tears the session down.
func runOnce(cfg *config.Config, host, port string) error {
	sess, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	hist, err := history.Load(filesys.OS(), cfg.HistoryPath(), cfg.History.Limit)
	if err != nil {
		return err
	}

	sess.Configure(host, port)
	if err := resolveAndRender(sess, hist, host, port); err != nil {
		return err
	}

	return hist.Save(filesys.OS(), cfg.HistoryPath())
}
