package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/launchdeck/pkg/launch"
	"github.com/matzehuels/launchdeck/pkg/launchapi"
)

const (
	maxNameWidth    = 28
	maxDetailsWidth = 72
	barWidth        = 30
)

// outcomeLabel renders the tri-state outcome with its color.
func outcomeLabel(l launch.Launch) string {
	if l.Upcoming {
		return StyleWarning.Render(iconPending + " upcoming")
	}
	switch l.Success {
	case launch.Succeeded:
		return StyleSuccess.Render(iconSuccess + " success")
	case launch.Failed:
		return StyleError.Render(iconError + " failure")
	default:
		return StyleWarning.Render(iconPending + " pending")
	}
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// renderLaunchTable renders a listing as a bordered table.
func renderLaunchTable(ls []launch.Launch) string {
	t := newTable("#", "Name", "Date (UTC)", "Rocket", "Launchpad", "Outcome")
	for _, l := range ls {
		t.Row(
			strconv.Itoa(l.FlightNumber),
			truncate(l.Name, maxNameWidth),
			formatDate(l.DateUTC),
			l.Rocket.Name,
			l.Launchpad.Name,
			outcomeLabel(l),
		)
	}
	return t.Render()
}

// printLaunchCard prints every known field of a single launch.
func printLaunchCard(w io.Writer, l launch.Launch) {
	printTitle(w, fmt.Sprintf("%s  #%d", l.Name, l.FlightNumber))
	printKeyValue(w, "ID", l.ID)
	printKeyValue(w, "Date (UTC)", formatDate(l.DateUTC))
	if l.DateLocal != "" {
		printKeyValue(w, "Date (local)", l.DateLocal)
	}
	printKeyValue(w, "Outcome", outcomeLabel(l))
	printKeyValue(w, "Rocket", l.Rocket.Name)
	pad := l.Launchpad.Name
	if l.Launchpad.Locality != "" {
		pad += " (" + l.Launchpad.Locality + ")"
	}
	printKeyValue(w, "Launchpad", pad)
	if l.TBD || l.NET {
		printKeyValue(w, "Schedule", "date not final")
	}
	for _, f := range l.Failures {
		printKeyValue(w, "Failure", fmt.Sprintf("T+%ds %s", f.Time, f.Reason))
	}
	if d := l.DetailsText(); d != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, lipgloss.NewStyle().Width(maxDetailsWidth).Render(d))
	}
	for _, link := range []struct {
		name string
		url  *string
	}{{"Webcast", l.Links.Webcast}, {"Article", l.Links.Article}, {"Wikipedia", l.Links.Wikipedia}} {
		if link.url != nil && *link.url != "" {
			printKeyValue(w, link.name, StyleLink.Render(*link.url))
		}
	}
}

// printStatsCard prints the aggregate counters.
func printStatsCard(w io.Writer, s launch.Stats) {
	printTitle(w, "Launch statistics")
	printKeyValue(w, "Total", StyleNumber.Render(strconv.Itoa(s.Total)))
	printKeyValue(w, "Successful", StyleSuccess.Render(strconv.Itoa(s.Success)))
	printKeyValue(w, "Failed", StyleError.Render(strconv.Itoa(s.Failed)))
	printKeyValue(w, "Upcoming", StyleWarning.Render(strconv.Itoa(s.Upcoming)))
	printKeyValue(w, "Success rate", StyleNumber.Render(fmt.Sprintf("%.1f%%", s.SuccessRate)))
}

// renderSeries renders a series as a label/value table with a proportional bar.
func renderSeries(r launchapi.SeriesResult) string {
	var peak float64
	for _, v := range r.Series.Statistics {
		peak = math.Max(peak, v)
	}

	t := newTable("Label", "Value", "")
	for _, p := range r.Series.Points() {
		t.Row(p.Label, formatValue(p.Value), StyleNumber.Render(bar(p.Value, peak)))
	}
	return t.Render()
}

func bar(v, peak float64) string {
	if peak <= 0 || v <= 0 {
		return ""
	}
	n := int(math.Round(v / peak * barWidth))
	return strings.Repeat(iconBar, max(n, 1))
}

func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
