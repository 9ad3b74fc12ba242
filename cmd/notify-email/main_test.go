package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func emailEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SMTP_HOST", "smtp.mazway.id")
	t.Setenv("SMTP_PORT", "587")
	t.Setenv("SMTP_USER", "")
	t.Setenv("SMTP_PASS", "")
	t.Setenv("EMAIL_FROM", "bot@mazway.id")
	t.Setenv("EMAIL_TO", "ops@mazway.id")
	t.Setenv("TZ", "Asia/Jakarta")
}

func requiredArgs() []string {
	return []string{"--site", "https://example.com", "--status", "Success", "--duration", "4.99"}
}

func TestRunMissingRequiredFlags(t *testing.T) {
	emailEnv(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{"--site", "https://example.com"}, &stdout, &stderr)

	assert.Equal(t, exitBadConfig, code)
	assert.Contains(t, stderr.String(), "--site, --status and --duration are required")
}

func TestRunInvalidStatus(t *testing.T) {
	emailEnv(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{"--site", "s", "--status", "Broken", "--duration", "1"}, &stdout, &stderr)

	assert.Equal(t, exitBadConfig, code)
	assert.Contains(t, stderr.String(), `invalid --status "Broken"`)
}

func TestRunNoRecipients(t *testing.T) {
	emailEnv(t)
	t.Setenv("EMAIL_TO", "")

	var stdout, stderr bytes.Buffer
	code := run(requiredArgs(), &stdout, &stderr)

	// Must fail validation before any SMTP dialing.
	assert.Equal(t, exitBadConfig, code)
	assert.Contains(t, stderr.String(), "no recipients")
}

func TestRunMissingHost(t *testing.T) {
	emailEnv(t)
	t.Setenv("SMTP_HOST", "")

	var stdout, stderr bytes.Buffer
	code := run(requiredArgs(), &stdout, &stderr)

	assert.Equal(t, exitBadConfig, code)
	assert.Contains(t, stderr.String(), "SMTP_HOST")
	assert.Contains(t, stderr.String(), "GitHub Secrets")
}

func TestRunToFlagOverridesEmptyEnv(t *testing.T) {
	emailEnv(t)
	t.Setenv("EMAIL_TO", "")
	t.Setenv("SMTP_HOST", "")

	var stdout, stderr bytes.Buffer
	code := run(append(requiredArgs(), "--to", "a@mazway.id"), &stdout, &stderr)

	// --to satisfied the recipient check; only the host is still missing.
	assert.Equal(t, exitBadConfig, code)
	assert.NotContains(t, stderr.String(), "no recipients")
	assert.Contains(t, stderr.String(), "SMTP_HOST")
}
