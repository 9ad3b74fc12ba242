// Package main is the email notifier for the PageSpeed Insight CI
// workflow. It builds a run summary email, attaches the HTML report when
// one exists, and sends it over a single SMTP session.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/mazway/psi-notify/config"
	"github.com/mazway/psi-notify/internal/email"
	"github.com/mazway/psi-notify/internal/report"
	"github.com/mazway/psi-notify/pkg/timeutil"
)

const tag = "[notify-email]"

// Exit codes shared with the CI workflow.
const (
	exitOK         = 0
	exitSendFailed = 1
	exitBadConfig  = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("notify-email", flag.ContinueOnError)
	fs.SetOutput(stderr)
	site := fs.String("site", "", "Site URL under test (required)")
	status := fs.String("status", "", "Run status: Success, Fail, Failed or Success/Fail (required)")
	duration := fs.String("duration", "", "Run duration in seconds (required)")
	reportPath := fs.String("report", "", "Path to the HTML report to attach (optional)")
	to := fs.String("to", "", "Comma-separated recipients (overrides EMAIL_TO)")
	if err := fs.Parse(args); err != nil {
		return exitBadConfig
	}

	if *site == "" || *status == "" || *duration == "" {
		fmt.Fprintf(stderr, "%s --site, --status and --duration are required\n", tag)
		return exitBadConfig
	}
	if !report.ValidEmailStatus(*status) {
		fmt.Fprintf(stderr, "%s invalid --status %q (want Success, Fail, Failed or Success/Fail)\n", tag, *status)
		return exitBadConfig
	}

	// .env is a convenience for local runs; CI injects real env vars.
	_ = godotenv.Load()

	cfg := config.Load()
	if *to != "" {
		cfg.Email.Recipients = config.SplitRecipients(*to)
	}
	if err := cfg.ValidateEmail(); err != nil {
		fmt.Fprintf(stderr, "%s %v. Set via env or GitHub Secrets.\n", tag, err)
		return exitBadConfig
	}

	res := report.Result{
		Site:       *site,
		Status:     report.NormalizeStatus(*status),
		Duration:   *duration,
		ReportPath: *reportPath,
	}

	msg := email.Compose(res, cfg.Email.From, cfg.Email.Recipients, timeutil.NowIn(cfg.App.Location))
	if res.ReportPath != "" {
		if err := msg.Attach(res.ReportPath); err != nil {
			if !errors.Is(err, email.ErrAttachmentNotFound) {
				fmt.Fprintf(stderr, "%s %v\n", tag, err)
				return exitSendFailed
			}
			// Missing report is a soft failure: send the summary anyway.
			fmt.Fprintf(stderr, "%s WARNING: attachment not found: %s\n", tag, res.ReportPath)
		}
	}

	sender := &email.Sender{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
	}
	if err := sender.Send(msg); err != nil {
		fmt.Fprintf(stderr, "%s send failed: %v\n", tag, err)
		return exitSendFailed
	}

	fmt.Fprintf(stdout, "%s Email sent to: %s\n", tag, strings.Join(msg.To, ", "))
	return exitOK
}
