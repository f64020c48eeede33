package query

import "github.com/matzehuels/launchdeck/pkg/launch"

// Page returns the 1-based page of records with at most limit entries.
// Pages below 1 are treated as 1; a limit of 0 or less returns every record.
// Pages past the end are empty. The result shares storage with records.
func Page(records []launch.Launch, page, limit int) []launch.Launch {
	if limit <= 0 {
		return records
	}
	page = max(page, 1)
	if page > PageCount(len(records), limit) {
		return nil
	}
	start := (page - 1) * limit
	end := min(start+limit, len(records))
	return records[start:end:end]
}

// PageCount returns how many pages of limit records are needed for n records.
func PageCount(n, limit int) int {
	if n <= 0 {
		return 0
	}
	if limit <= 0 {
		return 1
	}
	return (n-1)/limit + 1
}
