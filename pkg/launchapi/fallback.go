package launchapi

import "github.com/matzehuels/launchdeck/pkg/launch"

// SampleSeries returns the built-in sample data used by [WithFallback].
// Each call returns fresh slices.
func SampleSeries() map[SeriesID]launch.Series {
	return map[SeriesID]launch.Series{
		MonthlyLaunches: {
			Labels:     []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
			Statistics: []float64{3, 4, 5, 3, 6, 4, 5, 6, 4, 5, 3, 4},
		},
		SuccessRate: {
			Labels:     []string{"Success", "Failure"},
			Statistics: []float64{181, 5},
		},
		RocketUsage: {
			Labels:     []string{"Falcon 1", "Falcon 9", "Falcon Heavy"},
			Statistics: []float64{5, 178, 4},
		},
		LaunchesByYear: {
			Labels:     []string{"2017", "2018", "2019", "2020", "2021", "2022"},
			Statistics: []float64{18, 21, 13, 26, 31, 61},
		},
		LaunchpadUsage: {
			Labels:     []string{"CCSFS SLC 40", "KSC LC 39A", "VAFB SLC 4E", "Kwajalein Atoll"},
			Statistics: []float64{99, 55, 28, 5},
		},
		LaunchpadSuccess: {
			Labels:     []string{"CCSFS SLC 40", "KSC LC 39A", "VAFB SLC 4E", "Kwajalein Atoll"},
			Statistics: []float64{97.9, 98.2, 100, 40},
		},
	}
}
