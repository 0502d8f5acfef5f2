package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"

	"github.com/lc/hostq/internal/history"
	"github.com/lc/hostq/internal/resolve"
)

// renderEndpoints prints one resolution's endpoints as an indexed table.
func renderEndpoints(hostname, port string, eps []resolve.Endpoint, elapsed time.Duration) {
	if len(eps) == 0 {
		color.Yellow("no endpoints for %s:%s (%s)", hostname, port, elapsed.Round(time.Millisecond))
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Address", "Family"})
	table.SetHeaderColor(
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiCyanColor},
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiCyanColor},
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiCyanColor},
	)
	table.SetBorder(false)
	table.SetColumnColor(
		tablewriter.Colors{tablewriter.FgHiWhiteColor},
		tablewriter.Colors{tablewriter.FgGreenColor},
		tablewriter.Colors{tablewriter.FgYellowColor},
	)

	for i, ep := range eps {
		table.Append([]string{strconv.Itoa(i + 1), ep.Address, ep.Family.String()})
	}

	color.New(color.Bold).Printf("%s:%s — %d endpoint(s) in %s\n",
		hostname, port, len(eps), elapsed.Round(time.Millisecond))
	table.Render()
}

// renderHistory prints recorded resolutions, oldest first.
func renderHistory(entries []history.Entry) {
	if len(entries) == 0 {
		color.Yellow("No resolutions recorded yet.")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Host", "Port", "Endpoints", "Resolved At", "Elapsed"})
	table.SetHeaderColor(
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiCyanColor},
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiCyanColor},
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiCyanColor},
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiCyanColor},
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiCyanColor},
	)
	table.SetBorder(false)
	table.SetColumnColor(
		tablewriter.Colors{tablewriter.FgGreenColor},
		tablewriter.Colors{tablewriter.FgYellowColor},
		tablewriter.Colors{tablewriter.FgHiWhiteColor},
		tablewriter.Colors{tablewriter.FgHiWhiteColor},
		tablewriter.Colors{tablewriter.FgHiWhiteColor},
	)

	for _, e := range entries {
		table.Append([]string{
			e.Hostname,
			e.Port,
			endpointSummary(e.Endpoints),
			e.ResolvedAt.Format(time.RFC3339),
			e.Elapsed.Round(time.Millisecond).String(),
		})
	}

	color.New(color.Bold).Println("RESOLUTION HISTORY:")
	table.Render()
}

// endpointSummary flattens endpoints into a short display string.
func endpointSummary(eps []resolve.Endpoint) string {
	if len(eps) == 0 {
		return "(none)"
	}
	addrs := make([]string, len(eps))
	for i, ep := range eps {
		addrs[i] = ep.Address
	}
	const max = 3
	if len(addrs) > max {
		return fmt.Sprintf("%s, … (%d total)", strings.Join(addrs[:max], ", "), len(addrs))
	}
	return strings.Join(addrs, ", ")
}

// newEntry builds a history entry for one completed resolution.
func newEntry(hostname, port string, eps []resolve.Endpoint, elapsed time.Duration) history.Entry {
	return history.Entry{
		ID:         uuid.NewString(),
		Hostname:   hostname,
		Port:       port,
		Endpoints:  eps,
		ResolvedAt: time.Now(),
		Elapsed:    elapsed,
	}
}
