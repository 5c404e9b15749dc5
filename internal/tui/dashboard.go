package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ankurdhir/BharatAutoBazaar-sub000/internal/services"
)

// dashboardModel shows the seller's stats and listings with delete support
type dashboardModel struct {
	dashboard *services.DashboardImpl
	theme     Theme
	data      *services.DashboardData
	cursor    int
	spin      spinner.Model
	loading   bool
	confirm   bool
	errMsg    string
}

func newDashboardModel(dashboard *services.DashboardImpl, theme Theme) dashboardModel {
	m := dashboardModel{
		dashboard: dashboard,
		theme:     theme,
		spin:      spinner.New(),
		loading:   true,
	}
	m.spin.Spinner = spinner.Dot
	return m
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.load())
}

func (m dashboardModel) load() tea.Cmd {
	dashboard := m.dashboard
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		data, err := dashboard.Load(ctx)
		if err != nil {
			return flowErrMsg{err: err}
		}
		return dashboardLoadedMsg{data: data}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		if m.confirm {
			return m.updateConfirm(msg)
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.data != nil && m.cursor < len(m.data.Listings)-1 {
				m.cursor++
			}
		case "d":
			if m.data != nil && len(m.data.Listings) > 0 {
				m.confirm = true
			}
		case "r":
			m.loading = true
			return m, tea.Batch(m.spin.Tick, m.load())
		case "s":
			return m, func() tea.Msg { return navigateMsg{screen: ScreenSell} }
		}

	case dashboardLoadedMsg:
		m.loading = false
		m.data = msg.data
		if m.cursor >= len(msg.data.Listings) {
			m.cursor = 0
		}
		return m, nil

	case listingDeletedMsg:
		m.loading = true
		return m, tea.Batch(m.spin.Tick, m.load())

	case flowErrMsg:
		m.loading = false
		m.errMsg = userFacing(msg.err)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m dashboardModel) updateConfirm(msg tea.KeyMsg) (dashboardModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.confirm = false
		if m.data == nil || m.cursor >= len(m.data.Listings) {
			return m, nil
		}
		id := m.data.Listings[m.cursor].ID
		dashboard := m.dashboard
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			if err := dashboard.DeleteListing(ctx, id); err != nil {
				return flowErrMsg{err: err}
			}
			return listingDeletedMsg{id: id}
		}
	case "n", "N", "esc":
		m.confirm = false
	}
	return m, nil
}

func (m dashboardModel) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("My listings") + "\n\n")

	if m.loading {
		b.WriteString(m.spin.View() + m.theme.Help.Render(" loading") + "\n")
		return m.theme.Box.Render(b.String())
	}

	if m.data != nil {
		stats := m.data.Stats
		b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s   %s %s\n\n",
			m.theme.Label.Render("total"), m.theme.Value.Render(fmt.Sprint(stats.TotalCars)),
			m.theme.Label.Render("active"), m.theme.Success.Render(fmt.Sprint(stats.ActiveCars)),
			m.theme.Label.Render("pending"), m.theme.Info.Render(fmt.Sprint(stats.PendingCars)),
			m.theme.Label.Render("views"), m.theme.Value.Render(fmt.Sprint(stats.TotalViews)),
		))

		if len(m.data.Listings) == 0 {
			b.WriteString(m.theme.Help.Render("No listings yet, press s to sell your car") + "\n")
		}
		for i, listing := range m.data.Listings {
			line := fmt.Sprintf("%s · %d · ₹%d · %s", listing.Title, listing.Year, listing.Price, listing.Status)
			if i == m.cursor {
				b.WriteString(m.theme.Selected.Render("> "+line) + "\n")
			} else {
				b.WriteString(m.theme.Value.Render("  "+line) + "\n")
			}
		}
	}

	if m.errMsg != "" {
		b.WriteString("\n" + m.theme.Error.Render(m.errMsg) + "\n")
	}
	b.WriteString("\n" + m.theme.Help.Render("j/k move · d delete · r reload · s sell"))

	view := m.theme.Box.Render(b.String())
	if m.confirm {
		title := "Delete this listing?"
		if m.data != nil && m.cursor < len(m.data.Listings) {
			title = fmt.Sprintf("Delete %q?", m.data.Listings[m.cursor].Title)
		}
		modal := m.theme.Modal.Render(
			m.theme.Title.Render(title) + "\n\n" +
				m.theme.Subtitle.Render("This cannot be undone.") + "\n\n" +
				m.theme.Help.Render("y delete · n cancel"))
		return view + "\n" + modal
	}
	return view
}
