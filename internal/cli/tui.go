package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/launchdeck/pkg/launch"
	"github.com/matzehuels/launchdeck/pkg/launchapi"
	"github.com/matzehuels/launchdeck/pkg/query"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

const defaultBrowseLimit = 15

// =============================================================================
// LaunchListModel - Interactive launch browser
// =============================================================================

// launchesMsg delivers a reloaded collection to the model.
type launchesMsg struct {
	launches []launch.Launch
	err      error
}

// LaunchListModel is the bubbletea model for paging through launches.
type LaunchListModel struct {
	Launches []launch.Launch
	Page     int // 1-based
	Limit    int
	Cursor   int // index within the current page
	Detail   bool
	Loading  bool
	Err      error

	reload func() tea.Msg
}

// NewLaunchListModel creates a browser over launches with limit rows per
// page. reload, when non-nil, is run on "r" and must return a launchesMsg.
func NewLaunchListModel(launches []launch.Launch, limit int, reload func() tea.Msg) LaunchListModel {
	if limit <= 0 {
		limit = defaultBrowseLimit
	}
	return LaunchListModel{Launches: launches, Page: 1, Limit: limit, reload: reload}
}

func (m LaunchListModel) Init() tea.Cmd {
	return nil
}

func (m LaunchListModel) pages() int {
	return max(query.PageCount(len(m.Launches), m.Limit), 1)
}

func (m LaunchListModel) current() []launch.Launch {
	return query.Page(m.Launches, m.Page, m.Limit)
}

// Selected returns the launch under the cursor.
func (m LaunchListModel) Selected() (launch.Launch, bool) {
	page := m.current()
	if m.Cursor < 0 || m.Cursor >= len(page) {
		return launch.Launch{}, false
	}
	return page[m.Cursor], true
}

func (m LaunchListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case launchesMsg:
		m.Loading = false
		m.Err = msg.err
		if msg.err == nil {
			m.Launches = msg.launches
			m.Page = min(m.Page, m.pages())
			m.Cursor = min(m.Cursor, max(len(m.current())-1, 0))
		}
	case tea.KeyMsg:
		if m.Detail {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "esc", "enter", "backspace":
				m.Detail = false
			}
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			} else if m.Page > 1 {
				m.Page--
				m.Cursor = len(m.current()) - 1
			}
		case "down", "j":
			if m.Cursor < len(m.current())-1 {
				m.Cursor++
			} else if m.Page < m.pages() {
				m.Page++
				m.Cursor = 0
			}
		case "right", "l", "n", "pgdown":
			if m.Page < m.pages() {
				m.Page++
				m.Cursor = 0
			}
		case "left", "h", "p", "pgup":
			if m.Page > 1 {
				m.Page--
				m.Cursor = 0
			}
		case "enter":
			if _, ok := m.Selected(); ok {
				m.Detail = true
			}
		case "r":
			if m.reload != nil && !m.Loading {
				m.Loading = true
				return m, m.reload
			}
		}
	}
	return m, nil
}

func (m LaunchListModel) View() string {
	var b strings.Builder

	if m.Detail {
		if l, ok := m.Selected(); ok {
			printLaunchCard(&b, l)
		}
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("⏎/esc back  q quit"))
		return b.String()
	}

	b.WriteString(StyleTitle.Render("Launches"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ←/→ page  ⏎ details  r refresh  q quit"))
	b.WriteString("\n\n")

	page := m.current()
	if len(page) == 0 {
		b.WriteString(listDimStyle.Render("  No launches match"))
		b.WriteString("\n")
	} else {
		rows := make([][]string, 0, len(page))
		for i, l := range page {
			cursor := "  "
			if i == m.Cursor {
				cursor = "▸ "
			}
			rows = append(rows, []string{cursor, strconv.Itoa(l.FlightNumber), truncate(l.Name, maxNameWidth),
				formatDate(l.DateUTC), l.Rocket.Name, outcomeLabel(l)})
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(styleBorder).
			Headers("", "#", "Name", "Date (UTC)", "Rocket", "Outcome").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return styleHeader
				case row == m.Cursor:
					return listSelectedStyle
				default:
					return listNormalStyle
				}
			})
		b.WriteString(t.Render())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	footer := fmt.Sprintf("  page %d/%d  %d launches", m.Page, m.pages(), len(m.Launches))
	if m.Loading {
		footer += "  refreshing…"
	}
	b.WriteString(listDimStyle.Render(footer))
	if m.Err != nil {
		b.WriteString("\n")
		b.WriteString("  " + FormatError(m.Err))
	}
	return b.String()
}

// =============================================================================
// browse
// =============================================================================

func (c *CLI) browseCommand() *cobra.Command {
	var filters filterFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Page through launches interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := filters.spec()
			if err != nil {
				return err
			}
			load := func(ctx context.Context, svc *launchapi.Service) ([]launch.Launch, error) {
				all, err := svc.Launches(ctx, query.FilterSpec{})
				if err != nil {
					return nil, err
				}
				return query.Apply(all, spec), nil
			}

			ls, err := fetch(c, cmd, "Fetching launches", load)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			reload := func() tea.Msg {
				c.svc.Refresh()
				ls, err := load(ctx, c.svc)
				return launchesMsg{launches: ls, err: err}
			}

			m := NewLaunchListModel(ls, spec.Limit, reload)
			m.Page = min(max(spec.Page, 1), m.pages())
			p := tea.NewProgram(m,
				tea.WithContext(ctx),
				tea.WithAltScreen(),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = p.Run()
			return err
		},
	}

	filters.register(cmd, defaultBrowseLimit)
	return cmd
}
