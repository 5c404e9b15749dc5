package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
	"github.com/ankurdhir/BharatAutoBazaar-sub000/internal/services"
)

// browseModel searches public listings and toggles favorites
type browseModel struct {
	listings  domain.ListingAPI
	dashboard *services.DashboardImpl
	theme     Theme
	search    textinput.Model
	results   []domain.ListingSummary
	total     int
	favorites map[string]bool
	cursor    int
	spin      spinner.Model
	loading   bool
	errMsg    string
}

func newBrowseModel(listings domain.ListingAPI, dashboard *services.DashboardImpl, theme Theme) browseModel {
	search := textinput.New()
	search.Placeholder = "Search by brand, model or city"
	search.CharLimit = 64
	search.Focus()

	m := browseModel{
		listings:  listings,
		dashboard: dashboard,
		theme:     theme,
		search:    search,
		favorites: make(map[string]bool),
		spin:      spinner.New(),
	}
	m.spin.Spinner = spinner.Dot
	return m
}

func (m browseModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.load(""))
}

func (m browseModel) load(query string) tea.Cmd {
	listings := m.listings
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		results, total, err := listings.Search(ctx, domain.ListingFilter{Query: query, Limit: 20})
		if err != nil {
			return flowErrMsg{err: err}
		}
		return searchResultsMsg{listings: results, total: total}
	}
}

func (m browseModel) Update(msg tea.Msg) (browseModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			m.loading = true
			m.errMsg = ""
			return m, tea.Batch(m.spin.Tick, m.load(strings.TrimSpace(m.search.Value())))
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down":
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
			return m, nil
		case "ctrl+f":
			return m.toggleFavorite()
		}

	case searchResultsMsg:
		m.loading = false
		m.results = msg.listings
		m.total = msg.total
		m.cursor = 0
		return m, nil

	case flowErrMsg:
		m.loading = false
		m.errMsg = userFacing(msg.err)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m browseModel) toggleFavorite() (browseModel, tea.Cmd) {
	if m.cursor >= len(m.results) {
		return m, nil
	}
	id := m.results[m.cursor].ID
	next := !m.favorites[id]
	m.favorites[id] = next
	dashboard := m.dashboard
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := dashboard.ToggleFavorite(ctx, id, next); err != nil {
			return flowErrMsg{err: err}
		}
		return nil
	}
}

func (m browseModel) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Browse cars") + "\n\n")
	b.WriteString(m.search.View() + "\n\n")

	if m.loading {
		b.WriteString(m.spin.View() + m.theme.Help.Render(" searching") + "\n")
	} else {
		if len(m.results) == 0 {
			b.WriteString(m.theme.Help.Render("No cars found") + "\n")
		} else {
			b.WriteString(m.theme.Label.Render(fmt.Sprintf("%d cars", m.total)) + "\n")
		}
		for i, listing := range m.results {
			marker := "  "
			if m.favorites[listing.ID] {
				marker = m.theme.Success.Render("♥ ")
			}
			line := fmt.Sprintf("%s · %d · ₹%d · %s", listing.Title, listing.Year, listing.Price, listing.City)
			if i == m.cursor {
				b.WriteString(marker + m.theme.Selected.Render("> "+line) + "\n")
			} else {
				b.WriteString(marker + m.theme.Value.Render("  "+line) + "\n")
			}
		}
	}

	if m.errMsg != "" {
		b.WriteString("\n" + m.theme.Error.Render(m.errMsg) + "\n")
	}
	b.WriteString("\n" + m.theme.Help.Render("enter search · up/down move · ctrl+f favorite"))
	return m.theme.Box.Render(b.String())
}
