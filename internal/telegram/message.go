package telegram

import (
	"fmt"
	"strings"
	"time"

	"github.com/mazway/psi-notify/internal/report"
	"github.com/mazway/psi-notify/pkg/timeutil"
)

// Badge labels rendered on the status line.
const (
	BadgeSuccess = "✅ SUCCESS"
	BadgeFailed  = "❌ FAILED"
)

// ComposeText renders the HTML message for one run. Optional fields are
// omitted entirely rather than rendered blank. Flag values land in the
// markup unescaped; the workflow passes plain URLs and notes.
func ComposeText(res report.Result, now time.Time) string {
	badge := BadgeSuccess
	if report.IsFailure(res.Status) {
		badge = BadgeFailed
	}

	lines := []string{
		"<b>PageSpeed Insight Report</b>",
		fmt.Sprintf("Status: <b>%s</b>", badge),
		fmt.Sprintf("Site: <code>%s</code>", res.Site),
	}
	if res.Duration != "" {
		lines = append(lines, fmt.Sprintf("Duration: <b>%s s</b>", res.Duration))
	}
	lines = append(lines, "Time: "+now.Format(timeutil.FormatStamp))
	if res.Dashboard != "" {
		lines = append(lines, "Dashboard: "+res.Dashboard)
	}
	if res.Extra != "" {
		lines = append(lines, res.Extra)
	}

	return strings.Join(lines, "\n")
}
