package launch

import (
	"time"

	"github.com/matzehuels/launchdeck/pkg/errors"
)

// Stats are the aggregate counters served by /statistics.
type Stats struct {
	Total       int     `json:"total"`
	Success     int     `json:"success"`
	Failed      int     `json:"failed"`
	Upcoming    int     `json:"upcoming"`
	SuccessRate float64 `json:"success_rate"`
}

// Validate rejects negative counters and rates outside [0, 100].
func (s Stats) Validate() error {
	for _, f := range []struct {
		name string
		v    int
	}{{"total", s.Total}, {"success", s.Success}, {"failed", s.Failed}, {"upcoming", s.Upcoming}} {
		if f.v < 0 {
			return errors.Invalid(f.name, "negative count %d", f.v)
		}
	}
	if s.SuccessRate < 0 || s.SuccessRate > 100 {
		return errors.Invalid("success_rate", "%.2f out of range", s.SuccessRate)
	}
	return nil
}

// Series is a labelled numeric series. Labels and Statistics are
// positionally aligned.
type Series struct {
	Labels     []string  `json:"labels"`
	Statistics []float64 `json:"statistics"`
}

// Validate requires both slices to have the same length.
func (s Series) Validate() error {
	if len(s.Labels) != len(s.Statistics) {
		return errors.Invalid("statistics", "%d values for %d labels", len(s.Statistics), len(s.Labels))
	}
	return nil
}

// Point is one label/value pair of a series.
type Point struct {
	Label string
	Value float64
}

// Points zips the series. It assumes the series is valid.
func (s Series) Points() []Point {
	out := make([]Point, 0, len(s.Labels))
	for i, l := range s.Labels {
		out = append(out, Point{Label: l, Value: s.Statistics[i]})
	}
	return out
}

// Sum adds up every value.
func (s Series) Sum() float64 {
	var total float64
	for _, v := range s.Statistics {
		total += v
	}
	return total
}

// Info describes the API service (/info).
type Info struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Endpoints   []string `json:"endpoints"`
}

func (i Info) Validate() error {
	if i.Name == "" {
		return errors.Invalid("name", "missing")
	}
	return nil
}

// Health is the /health response.
type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func (h Health) Validate() error {
	if h.Status == "" {
		return errors.Invalid("status", "missing")
	}
	return nil
}

// OK reports whether the service declared itself healthy.
func (h Health) OK() bool {
	return h.Status == "ok" || h.Status == "healthy" || h.Status == "up"
}
