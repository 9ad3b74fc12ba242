// Package report holds the value types shared by the notifier CLIs: the
// outcome of a single PageSpeed Insight run and the status vocabulary used
// when rendering it.
package report

import "strings"

// Result describes one PageSpeed Insight run as passed in on the command
// line. It is built once in main and never mutated afterwards; fields a
// given notifier does not use stay empty.
type Result struct {
	Site       string
	Status     string
	Duration   string
	ReportPath string
	Dashboard  string
	Extra      string
}

// emailStatuses is the accepted vocabulary for the email notifier's
// --status flag. "Success/Fail" is the placeholder value the workflow
// passes when the outcome step was skipped.
var emailStatuses = map[string]struct{}{
	"Success":      {},
	"Fail":         {},
	"Failed":       {},
	"Success/Fail": {},
}

// ValidEmailStatus reports whether raw is an accepted --status value for
// the email notifier.
func ValidEmailStatus(raw string) bool {
	_, ok := emailStatuses[raw]
	return ok
}

// NormalizeStatus maps "Failed" to "Fail" and leaves everything else
// untouched.
func NormalizeStatus(raw string) string {
	if raw == "Failed" {
		return "Fail"
	}
	return raw
}

// IsFailure reports whether raw names a failed run, matching FAIL and
// FAILED in any case.
func IsFailure(raw string) bool {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "FAIL", "FAILED":
		return true
	}
	return false
}
