package launchapi

import (
	"strings"

	"github.com/matzehuels/launchdeck/pkg/errors"
	"github.com/matzehuels/launchdeck/pkg/launch"
)

// SeriesID identifies one aggregate series served by the API.
type SeriesID string

const (
	MonthlyLaunches  SeriesID = "monthly-launches"
	SuccessRate      SeriesID = "success-rate"
	RocketUsage      SeriesID = "rocket-usage"
	LaunchesByYear   SeriesID = "launches-by-year"
	LaunchpadUsage   SeriesID = "launchpad-usage"
	LaunchpadSuccess SeriesID = "launchpad-success"
)

type seriesDef struct {
	path  string
	title string
}

var seriesTable = map[SeriesID]seriesDef{
	MonthlyLaunches:  {"/monthly-launches", "Monthly launches"},
	SuccessRate:      {"/success-rate", "Success rate"},
	RocketUsage:      {"/rocket-usage", "Rocket usage"},
	LaunchesByYear:   {"/launches-by-year", "Launches by year"},
	LaunchpadUsage:   {"/launchpad-usage", "Launchpad usage"},
	LaunchpadSuccess: {"/launchpad-success", "Launchpad success rate"},
}

// SeriesIDs lists every series in display order.
func SeriesIDs() []SeriesID {
	return []SeriesID{MonthlyLaunches, SuccessRate, RocketUsage, LaunchesByYear, LaunchpadUsage, LaunchpadSuccess}
}

// ParseSeriesID resolves a series name. Unknown names are an invalid input
// error listing the valid ones.
func ParseSeriesID(name string) (SeriesID, error) {
	if err := errors.ValidateSeriesName(name); err != nil {
		return "", err
	}
	id := SeriesID(name)
	if _, ok := seriesTable[id]; !ok {
		names := make([]string, 0, len(seriesTable))
		for _, known := range SeriesIDs() {
			names = append(names, string(known))
		}
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown series %q (valid: %s)", name, strings.Join(names, ", "))
	}
	return id, nil
}

// Path returns the endpoint path of the series.
func (id SeriesID) Path() string { return seriesTable[id].path }

// Title returns a human readable name.
func (id SeriesID) Title() string {
	if d, ok := seriesTable[id]; ok {
		return d.title
	}
	return string(id)
}

func (id SeriesID) String() string { return string(id) }

// SeriesResult is the outcome of fetching one series. When Substitute is
// set, Series holds sample data and Err the failure it replaced.
type SeriesResult struct {
	ID         SeriesID
	Series     launch.Series
	Err        error
	Substitute bool
}

// OK reports whether Series can be displayed.
func (r SeriesResult) OK() bool { return r.Err == nil || r.Substitute }
