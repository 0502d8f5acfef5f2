package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/lc/hostq/internal/config"
	"github.com/lc/hostq/internal/filesys"
	"github.com/lc/hostq/internal/history"
	"github.com/lc/hostq/internal/hostcheck"
	"github.com/lc/hostq/internal/session"
)

// runPrompt drives the interactive menu loop. One session lives for the
// whole prompt; history is loaded at startup and saved on exit.
func runPrompt(cfg *config.Config) error {
	sess, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	hist, err := history.Load(filesys.OS(), cfg.HistoryPath(), cfg.History.Limit)
	if err != nil {
		return err
	}

	var (
		hostname string
		port     = _defaultPort
	)
	in := bufio.NewScanner(os.Stdin)

	color.New(color.Bold).Println("hostq — host resolution workbench")
	printMenu()

	for {
		color.New(color.FgHiWhite).Printf("[%s:%s]> ", orUnset(hostname), port)
		if !in.Scan() {
			break
		}

		switch strings.TrimSpace(in.Text()) {
		case "0":
			if err := hist.Save(filesys.OS(), cfg.HistoryPath()); err != nil {
				color.Red("failed to save history: %v", err)
			}
			return nil
		case "1":
			hostname = promptValue(in, "hostname", hostcheck.Hostname)
		case "2":
			port = promptValue(in, "port", hostcheck.Port)
		case "3":
			if hostname == "" {
				color.Yellow("set a hostname first (command 1)")
				continue
			}
			sess.Configure(hostname, port)
			if err := resolveAndRender(sess, hist, hostname, port); err != nil {
				color.New(color.FgRed).Printf("✗ %v\n", err)
			}
		case "4":
			renderHistory(hist.Snapshot())
		case "9":
			printMenu()
		case "":
			// re-prompt
		default:
			color.Yellow("unrecognised command, 9 lists the commands")
		}
	}

	// stdin closed; save what we have before the deferred Close.
	if err := hist.Save(filesys.OS(), cfg.HistoryPath()); err != nil {
		color.Red("failed to save history: %v", err)
	}
	return nil
}

// promptValue keeps asking until the input passes check or stdin closes.
// On closed stdin it returns the empty string.
func promptValue(in *bufio.Scanner, what string, check func(string) error) string {
	for {
		color.New(color.FgHiWhite).Printf("enter %s: ", what)
		if !in.Scan() {
			return ""
		}
		val := strings.TrimSpace(in.Text())
		if err := check(val); err != nil {
			color.Yellow("%v", err)
			continue
		}
		return val
	}
}

// resolveAndRender runs one resolve/wait cycle on sess and renders the
// outcome. A successful resolution (endpoints or not) is recorded in hist.
func resolveAndRender(sess *session.Session, hist *history.Store, hostname, port string) error {
	start := time.Now()
	if err := sess.Resolve(); err != nil {
		return err
	}

	eps, err := sess.Wait()
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	renderEndpoints(hostname, port, eps, elapsed)
	hist.Add(newEntry(hostname, port, eps, elapsed))
	return nil
}

func printMenu() {
	fmt.Println("  0  exit")
	fmt.Println("  1  set hostname")
	fmt.Println("  2  set port")
	fmt.Println("  3  resolve")
	fmt.Println("  4  history")
	fmt.Println("  9  show commands")
}

func orUnset(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
