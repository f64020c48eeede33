package fakeapi

import (
	"math"
	"time"

	"github.com/matzehuels/launchdeck/pkg/launch"
)

var (
	falcon1 = launch.Rocket{ID: "5e9d0d95eda69955f709d1eb", Name: "Falcon 1", Type: "rocket", Stages: 2, SuccessRatePct: 40}
	falcon9 = launch.Rocket{ID: "5e9d0d95eda69973a809d1ec", Name: "Falcon 9", Type: "rocket", Active: true, Stages: 2, SuccessRatePct: 98}
	heavy   = launch.Rocket{ID: "5e9d0d95eda69974db09d1ed", Name: "Falcon Heavy", Type: "rocket", Active: true, Stages: 2, Boosters: 2, SuccessRatePct: 100}

	kwaj  = launch.Launchpad{ID: "5e9e4502f5090995de566f86", Name: "Kwajalein Atoll", FullName: "Kwajalein Atoll Omelek Island", Region: "Marshall Islands", Status: "retired"}
	slc40 = launch.Launchpad{ID: "5e9e4501f509094ba4566f84", Name: "CCSFS SLC 40", FullName: "Cape Canaveral Space Force Station Space Launch Complex 40", Region: "Florida", Status: "active"}
	lc39a = launch.Launchpad{ID: "5e9e4502f509094188566f88", Name: "KSC LC 39A", FullName: "Kennedy Space Center Historic Launch Complex 39A", Region: "Florida", Status: "active"}
)

func ptr[T any](v T) *T { return &v }

func date(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// Launches returns the default collection: two Falcon 1 flights, three
// Falcon 9 flights, one Falcon Heavy flight and one upcoming launch.
func Launches() []launch.Launch {
	return []launch.Launch{
		{ID: "5eb87cd9ffd86e000604b32a", Name: "FalconSat", FlightNumber: 1, DateUTC: date("2006-03-24T22:30:00Z"),
			Success: launch.Failed, Details: ptr("Engine failure at 33 seconds and loss of vehicle"), Rocket: falcon1, Launchpad: kwaj},
		{ID: "5eb87cdeffd86e000604b330", Name: "RatSat", FlightNumber: 4, DateUTC: date("2008-09-28T23:15:00Z"),
			Success: launch.Succeeded, Details: ptr("First privately developed liquid fuel rocket to reach orbit"), Rocket: falcon1, Launchpad: kwaj},
		{ID: "5eb87d42ffd86e000604b384", Name: "CRS-20", FlightNumber: 91, DateUTC: date("2020-03-07T04:50:31Z"),
			Success: launch.Succeeded, Rocket: falcon9, Launchpad: slc40},
		{ID: "5eb87d46ffd86e000604b388", Name: "Crew-1", FlightNumber: 107, DateUTC: date("2020-11-16T00:27:00Z"),
			Success: launch.Succeeded, Details: ptr("First operational crewed flight of Dragon"), Rocket: falcon9, Launchpad: lc39a},
		{ID: "5ed983aa1f30554030d45c31", Name: "Arabsat-6A", FlightNumber: 78, DateUTC: date("2019-04-11T22:35:00Z"),
			Success: launch.Succeeded, Rocket: heavy, Launchpad: lc39a},
		{ID: "5fe3af58b3467846b324215f", Name: "Starlink 4-36", FlightNumber: 187, DateUTC: date("2022-10-20T14:50:00Z"),
			Success: launch.Succeeded, Rocket: falcon9, Launchpad: slc40},
		{ID: "62dd70d5202306255024d139", Name: "USSF-44", FlightNumber: 188, DateUTC: date("2030-11-01T13:41:00Z"),
			Upcoming: true, Rocket: heavy, Launchpad: lc39a},
	}
}

// StatsOf aggregates ls the way /statistics does. The success rate is the
// share of successful flights among those with a known outcome.
func StatsOf(ls []launch.Launch) launch.Stats {
	var s launch.Stats
	for _, l := range ls {
		s.Total++
		switch {
		case l.Upcoming:
			s.Upcoming++
		case l.Success == launch.Succeeded:
			s.Success++
		case l.Success == launch.Failed:
			s.Failed++
		}
	}
	if done := s.Success + s.Failed; done > 0 {
		s.SuccessRate = math.Round(float64(s.Success)/float64(done)*10000) / 100
	}
	return s
}

// SeriesFixtures returns one series per series endpoint, keyed by path
// segment.
func SeriesFixtures() map[string]launch.Series {
	return map[string]launch.Series{
		"monthly-launches":  {Labels: []string{"Jan", "Feb", "Mar"}, Statistics: []float64{4, 6, 5}},
		"success-rate":      {Labels: []string{"Success", "Failure"}, Statistics: []float64{181, 5}},
		"rocket-usage":      {Labels: []string{"Falcon 1", "Falcon 9", "Falcon Heavy"}, Statistics: []float64{5, 178, 4}},
		"launches-by-year":  {Labels: []string{"2020", "2021", "2022"}, Statistics: []float64{26, 31, 61}},
		"launchpad-usage":   {Labels: []string{"CCSFS SLC 40", "KSC LC 39A", "VAFB SLC 4E"}, Statistics: []float64{99, 55, 28}},
		"launchpad-success": {Labels: []string{"CCSFS SLC 40", "KSC LC 39A", "VAFB SLC 4E"}, Statistics: []float64{97, 98.2, 100}},
	}
}
