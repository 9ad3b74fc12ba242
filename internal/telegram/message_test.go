package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazway/psi-notify/internal/report"
)

var wib = time.FixedZone("WIB", 7*60*60)

func TestComposeTextFailureBadge(t *testing.T) {
	for _, status := range []string{"fail", "FAIL", "Failed", "FAILED"} {
		text := ComposeText(report.Result{Site: "https://example.com", Status: status}, time.Now().In(wib))
		assert.Contains(t, text, "Status: <b>❌ FAILED</b>", "status %q", status)
	}
}

func TestComposeTextSuccessBadge(t *testing.T) {
	for _, status := range []string{"success", "SUCCESS", "anything-else"} {
		text := ComposeText(report.Result{Site: "https://example.com", Status: status}, time.Now().In(wib))
		assert.Contains(t, text, "Status: <b>✅ SUCCESS</b>", "status %q", status)
	}
}

func TestComposeTextFullMessage(t *testing.T) {
	now := time.Date(2025, 8, 30, 14, 5, 0, 0, wib)
	res := report.Result{
		Site:      "https://www.generasimaju.co.id",
		Status:    "SUCCESS",
		Duration:  "4.99",
		Dashboard: "https://dash.mazway.id/psi",
		Extra:     "Triggered by nightly run",
	}

	text := ComposeText(res, now)
	lines := strings.Split(text, "\n")
	require.Len(t, lines, 7)

	assert.Equal(t, "<b>PageSpeed Insight Report</b>", lines[0])
	assert.Equal(t, "Status: <b>✅ SUCCESS</b>", lines[1])
	assert.Equal(t, "Site: <code>https://www.generasimaju.co.id</code>", lines[2])
	assert.Equal(t, "Duration: <b>4.99 s</b>", lines[3])
	assert.Equal(t, "Time: 30 Aug 2025 | 14:05 WIB", lines[4])
	assert.Equal(t, "Dashboard: https://dash.mazway.id/psi", lines[5])
	assert.Equal(t, "Triggered by nightly run", lines[6])
}

func TestComposeTextOmitsOptionalLines(t *testing.T) {
	res := report.Result{Site: "https://example.com", Status: "SUCCESS"}
	text := ComposeText(res, time.Now().In(wib))

	lines := strings.Split(text, "\n")
	require.Len(t, lines, 4)
	assert.NotContains(t, text, "Duration:")
	assert.NotContains(t, text, "Dashboard:")
}

func TestComposeTextUTCFallbackStamp(t *testing.T) {
	now := time.Date(2025, 8, 30, 7, 5, 0, 0, time.UTC)
	text := ComposeText(report.Result{Site: "s", Status: "SUCCESS"}, now)
	assert.Contains(t, text, "Time: 30 Aug 2025 | 07:05 UTC")
}

func TestComposeTextDoesNotEscapeValues(t *testing.T) {
	res := report.Result{Site: "https://example.com/?a=1&b=<2>", Status: "SUCCESS"}
	text := ComposeText(res, time.Now().In(wib))

	// Values pass through verbatim.
	assert.Contains(t, text, "<code>https://example.com/?a=1&b=<2></code>")
}
