package launch

import (
	stderrors "errors"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/launchdeck/pkg/errors"
)

// Launch is a single launch record.
type Launch struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	FlightNumber int       `json:"flight_number"`
	DateUTC      time.Time `json:"date_utc"`
	DateLocal    string    `json:"date_local"`
	Success      Outcome   `json:"success"`
	Upcoming     bool      `json:"upcoming"`
	Details      *string   `json:"details"`
	Rocket       Rocket    `json:"rocket"`
	Launchpad    Launchpad `json:"launchpad"`
	Links        Links     `json:"links"`
	Failures     []Failure `json:"failures,omitempty"`
	TBD          bool      `json:"tbd"`
	NET          bool      `json:"net"`
	Window       *int      `json:"window"`
}

// Rocket is the vehicle flown on a launch.
type Rocket struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	Active         bool    `json:"active"`
	Stages         int     `json:"stages"`
	Boosters       int     `json:"boosters"`
	CostPerLaunch  int64   `json:"cost_per_launch"`
	SuccessRatePct float64 `json:"success_rate_pct"`
	FirstFlight    string  `json:"first_flight"`
	Country        string  `json:"country"`
	Company        string  `json:"company"`
	Description    string  `json:"description"`
}

// Launchpad is the site a launch lifted off from.
type Launchpad struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	FullName        string  `json:"full_name"`
	Status          string  `json:"status"`
	Locality        string  `json:"locality"`
	Region          string  `json:"region"`
	Timezone        string  `json:"timezone"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	LaunchAttempts  int     `json:"launch_attempts"`
	LaunchSuccesses int     `json:"launch_successes"`
}

// Links holds media and reference URLs. Absent links are nil.
type Links struct {
	Patch     Patch   `json:"patch"`
	Webcast   *string `json:"webcast"`
	YoutubeID *string `json:"youtube_id"`
	Article   *string `json:"article"`
	Wikipedia *string `json:"wikipedia"`
	Presskit  *string `json:"presskit"`
}

type Patch struct {
	Small *string `json:"small"`
	Large *string `json:"large"`
}

// Failure describes an anomaly during flight.
type Failure struct {
	Time     int    `json:"time"`
	Altitude *int   `json:"altitude"`
	Reason   string `json:"reason"`
}

// DetailsText returns the details or "" when absent.
func (l Launch) DetailsText() string {
	if l.Details == nil {
		return ""
	}
	return *l.Details
}

// Validate checks the fields every view depends on.
func (l Launch) Validate() error {
	switch {
	case strings.TrimSpace(l.ID) == "":
		return errors.Invalid("id", "missing")
	case strings.TrimSpace(l.Name) == "":
		return errors.Invalid("name", "missing for launch %s", l.ID)
	case l.DateUTC.IsZero():
		return errors.Invalid("date_utc", "missing for launch %s", l.ID)
	}
	return nil
}

// List is a launch collection as returned by the listing endpoints.
type List []Launch

// Validate validates every record and reports the first failure with its index.
func (ls List) Validate() error {
	for i, l := range ls {
		if err := l.Validate(); err != nil {
			var ve *errors.ValidationError
			if stderrors.As(err, &ve) {
				return errors.Invalid("["+strconv.Itoa(i)+"]."+ve.Field, "%s", ve.Reason)
			}
			return err
		}
	}
	return nil
}
