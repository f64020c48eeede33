package query

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/launchdeck/pkg/errors"
	"github.com/matzehuels/launchdeck/pkg/launch"
)

// SortField names the attribute a listing is ordered by.
type SortField string

const (
	SortDate         SortField = "date"
	SortName         SortField = "name"
	SortFlightNumber SortField = "flight_number"
)

// SortOrder is the direction of a listing.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// Defaults used by [Default] and the parsers.
const (
	DefaultSortBy    = SortDate
	DefaultSortOrder = Desc
	DefaultPage      = 1
	DefaultLimit     = 20
)

// FilterSpec describes a launch query. Nil pointers and empty strings
// place no constraint.
type FilterSpec struct {
	// Search is matched case-insensitively against the launch name, the
	// rocket name, the launchpad name and the details.
	Search    string
	Outcome   *launch.Outcome
	Upcoming  *bool
	DateFrom  *time.Time // inclusive
	DateTo    *time.Time // inclusive
	Rocket    string     // rocket id
	Launchpad string     // launchpad id

	SortBy    SortField
	SortOrder SortOrder

	// Page and Limit are advisory; see [Page].
	Page  int
	Limit int
}

// Default returns the filter used when nothing is configured: newest first,
// first page of 20.
func Default() FilterSpec {
	return FilterSpec{
		SortBy:    DefaultSortBy,
		SortOrder: DefaultSortOrder,
		Page:      DefaultPage,
		Limit:     DefaultLimit,
	}
}

// Ptr returns a pointer to v, for filling optional predicates.
func Ptr[T any](v T) *T { return &v }

// ParseSortBy maps a user supplied field name onto a [SortField].
// Unknown or empty names fall back to [DefaultSortBy].
func ParseSortBy(s string) SortField {
	switch f := SortField(strings.ToLower(strings.TrimSpace(s))); f {
	case SortDate, SortName, SortFlightNumber:
		return f
	case "flight", "flightnumber", "flight-number":
		return SortFlightNumber
	}
	return DefaultSortBy
}

// ParseSortOrder maps "asc"/"desc" onto a [SortOrder].
// Unknown or empty values fall back to [DefaultSortOrder].
func ParseSortOrder(s string) SortOrder {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case Asc, Desc:
		return o
	}
	return DefaultSortOrder
}

// ParseOutcome accepts succeeded/success/true, failed/failure/false and
// pending/null.
func ParseOutcome(s string) (launch.Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "succeeded", "success", "true":
		return launch.Succeeded, nil
	case "failed", "failure", "false":
		return launch.Failed, nil
	case "pending", "null", "unknown":
		return launch.Pending, nil
	}
	return launch.Pending, errors.New(errors.ErrCodeInvalidInput,
		"unknown outcome %q (want succeeded, failed or pending)", s)
}

// Validate rejects specs that can never match or cannot be paged.
func (f FilterSpec) Validate() error {
	if f.DateFrom != nil && f.DateTo != nil && f.DateFrom.After(*f.DateTo) {
		return errors.New(errors.ErrCodeInvalidInput, "date range is empty: %s is after %s",
			f.DateFrom.Format(time.DateOnly), f.DateTo.Format(time.DateOnly))
	}
	if f.Page < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "page must not be negative: %d", f.Page)
	}
	if f.Limit < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "limit must not be negative: %d", f.Limit)
	}
	return nil
}

// Values encodes the set fields as query parameters for servers that filter
// on their side. Unset fields are omitted.
func (f FilterSpec) Values() url.Values {
	v := url.Values{}
	setString := func(k, s string) {
		if s != "" {
			v.Set(k, s)
		}
	}

	setString("search", f.Search)
	if f.Outcome != nil {
		switch *f.Outcome {
		case launch.Succeeded:
			v.Set("success", "true")
		case launch.Failed:
			v.Set("success", "false")
		default:
			v.Set("success", "null")
		}
	}
	if f.Upcoming != nil {
		v.Set("upcoming", strconv.FormatBool(*f.Upcoming))
	}
	if f.DateFrom != nil {
		v.Set("dateFrom", f.DateFrom.UTC().Format(time.RFC3339))
	}
	if f.DateTo != nil {
		v.Set("dateTo", f.DateTo.UTC().Format(time.RFC3339))
	}
	setString("rocket", f.Rocket)
	setString("launchpad", f.Launchpad)
	setString("sortBy", string(f.SortBy))
	setString("sortOrder", string(f.SortOrder))
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	return v
}

// FromValues is the inverse of [FilterSpec.Values]. Missing parameters keep
// the values of [Default].
func FromValues(v url.Values) (FilterSpec, error) {
	f := Default()
	f.Search = v.Get("search")
	f.Rocket = v.Get("rocket")
	f.Launchpad = v.Get("launchpad")
	if s := v.Get("sortBy"); s != "" {
		f.SortBy = ParseSortBy(s)
	}
	if s := v.Get("sortOrder"); s != "" {
		f.SortOrder = ParseSortOrder(s)
	}

	if s := v.Get("success"); s != "" {
		o, err := ParseOutcome(s)
		if err != nil {
			return f, err
		}
		f.Outcome = &o
	}
	if s := v.Get("upcoming"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return f, errors.New(errors.ErrCodeInvalidInput, "upcoming: %v", err)
		}
		f.Upcoming = &b
	}

	var err error
	if f.DateFrom, err = parseDate(v.Get("dateFrom")); err != nil {
		return f, err
	}
	if f.DateTo, err = parseDate(v.Get("dateTo")); err != nil {
		return f, err
	}
	if f.Page, err = parseInt(v.Get("page"), f.Page); err != nil {
		return f, err
	}
	if f.Limit, err = parseInt(v.Get("limit"), f.Limit); err != nil {
		return f, err
	}
	return f, f.Validate()
}

// ParseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates (UTC).
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, errors.New(errors.ErrCodeInvalidInput, "invalid date %q (want YYYY-MM-DD or RFC 3339)", s)
	}
	return t, nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseInt(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "not a number: %q", s)
	}
	return n, nil
}
