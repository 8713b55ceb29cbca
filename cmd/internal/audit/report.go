package audit

import "strings"

// Overall report statuses.
const (
	StatusPassed  = "passed"
	StatusWarning = "warning"
	StatusFailed  = "failed"
)

// Summary counts check outcomes.
type Summary struct {
	Total    int    `json:"total"`
	Passed   int    `json:"passed"`
	Warnings int    `json:"warnings"`
	Failed   int    `json:"failed"`
	Status   string `json:"status"`
}

// Report is the JSON body returned by POST /audit.
type Report struct {
	Summary Summary `json:"summary"`
	Results []Row   `json:"results"`
}

// BuildReport reshapes raw rows into a Report.
//
// Row statuses are matched case-insensitively: pass/passed/ok, warn/warning.
// Anything else counts as failed. The overall status is the worst seen.
func BuildReport(rows []Row) Report {
	rep := Report{Results: make([]Row, 0, len(rows))}

	for _, r := range rows {
		rep.Summary.Total++
		switch classify(r.Status) {
		case StatusPassed:
			rep.Summary.Passed++
		case StatusWarning:
			rep.Summary.Warnings++
		default:
			rep.Summary.Failed++
		}
		rep.Results = append(rep.Results, r)
	}

	switch {
	case rep.Summary.Failed > 0:
		rep.Summary.Status = StatusFailed
	case rep.Summary.Warnings > 0:
		rep.Summary.Status = StatusWarning
	default:
		rep.Summary.Status = StatusPassed
	}
	return rep
}

func classify(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "pass", "passed", "ok":
		return StatusPassed
	case "warn", "warning":
		return StatusWarning
	default:
		return StatusFailed
	}
}
