package domain

import "context"

// Check names, stable across runs so dashboards and logs can key on them.
const (
	CheckTablesPopulated   = "tables_populated"
	CheckDailyOrphans      = "daily_orphans"
	CheckMonthlyOrphans    = "monthly_orphans"
	CheckDailyDuplicates   = "daily_duplicates"
	CheckMonthlyDuplicates = "monthly_duplicates"
)

// CheckResult is the outcome of one integrity check.
type CheckResult struct {
	Name       string
	Passed     bool
	Violations int64
	Detail     string
}

// Report collects the outcome of every check. All checks run even when an
// early one fails, so a single report describes everything wrong with the
// store.
type Report struct {
	Results []CheckResult
}

// Passed reports whether every check passed.
func (r Report) Passed() bool {
	for _, result := range r.Results {
		if !result.Passed {
			return false
		}
	}
	return true
}

// Failures returns the failed checks.
func (r Report) Failures() []CheckResult {
	failures := make([]CheckResult, 0, len(r.Results))
	for _, result := range r.Results {
		if !result.Passed {
			failures = append(failures, result)
		}
	}
	return failures
}

// Service validates referential and uniqueness invariants that the store
// cannot enforce on its own. SQLite does not enforce foreign keys unless
// every connection opts in, so the pipeline re-checks them after loading.
type Service interface {
	Validate(ctx context.Context) (Report, error)
}
