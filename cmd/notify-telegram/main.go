// Package main is the Telegram notifier for the PageSpeed Insight CI
// workflow. It posts one formatted status message to the configured chat.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/mazway/psi-notify/config"
	"github.com/mazway/psi-notify/internal/report"
	"github.com/mazway/psi-notify/internal/telegram"
	"github.com/mazway/psi-notify/pkg/timeutil"
)

const tag = "[notify-telegram]"

// Exit codes shared with the CI workflow.
const (
	exitOK         = 0
	exitSendFailed = 1
	exitBadConfig  = 2
)

// defaultSite is the primary property the workflow tests when no --site is
// given.
const defaultSite = "https://www.generasimaju.co.id"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("notify-telegram", flag.ContinueOnError)
	fs.SetOutput(stderr)
	status := fs.String("status", "", "SUCCESS or FAILED (required)")
	site := fs.String("site", defaultSite, "Site URL under test")
	duration := fs.String("duration", "", "Run duration in seconds")
	dashboard := fs.String("dashboard", "", "Dashboard URL to include")
	extra := fs.String("extra", "", "Extra note to append")
	if err := fs.Parse(args); err != nil {
		return exitBadConfig
	}

	if *status == "" {
		fmt.Fprintf(stderr, "%s --status is required\n", tag)
		return exitBadConfig
	}

	// .env is a convenience for local runs; CI injects real env vars.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.ValidateTelegram(); err != nil {
		fmt.Fprintf(stderr, "%s %v. Set via env or GitHub Secrets.\n", tag, err)
		return exitBadConfig
	}

	now := timeutil.NowIn(cfg.App.Location)
	if !cfg.App.ZoneResolved {
		// Unknown TZ: stamp the message in UTC rather than guessing.
		now = time.Now().UTC()
	}

	text := telegram.ComposeText(report.Result{
		Site:      *site,
		Status:    *status,
		Duration:  *duration,
		Dashboard: *dashboard,
		Extra:     *extra,
	}, now)

	client := telegram.NewClient(telegram.ClientConfig{
		Token:   cfg.Telegram.Token,
		ChatID:  cfg.Telegram.ChatID,
		BaseURL: cfg.Telegram.BaseURL,
		Timeout: cfg.Telegram.Timeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Telegram.Timeout)
	defer cancel()

	if err := client.SendMessage(ctx, text); err != nil {
		var apiErr *telegram.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintf(stderr, "%s Telegram API error: %s\n", tag, apiErr.Raw)
		} else {
			fmt.Fprintf(stderr, "%s send failed: %v\n", tag, err)
		}
		return exitSendFailed
	}

	fmt.Fprintf(stdout, "%s Sent.\n", tag)
	return exitOK
}
