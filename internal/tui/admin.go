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

type adminPhase int

const (
	adminLogin adminPhase = iota
	adminQueue
	adminReason
)

// adminModel drives the moderation view: password login, then the pending
// queue with approve/reject verdicts
type adminModel struct {
	review  *services.AdminReviewImpl
	theme   Theme
	phase   adminPhase
	email   textinput.Model
	pass    textinput.Model
	reason  textinput.Model
	onEmail bool
	cursor  int
	spin    spinner.Model
	waiting bool
	errMsg  string
}

func newAdminModel(review *services.AdminReviewImpl, theme Theme, loggedIn bool) adminModel {
	email := textinput.New()
	email.Placeholder = "admin@example.com"
	email.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.EchoMode = textinput.EchoPassword

	reason := textinput.New()
	reason.Placeholder = "Rejection reason"

	m := adminModel{
		review:  review,
		theme:   theme,
		email:   email,
		pass:    pass,
		reason:  reason,
		onEmail: true,
		spin:    spinner.New(),
	}
	m.spin.Spinner = spinner.Dot
	if loggedIn {
		m.phase = adminQueue
	}
	return m
}

func (m adminModel) Init() tea.Cmd {
	if m.phase == adminQueue {
		return tea.Batch(m.spin.Tick, m.loadPending())
	}
	return textinput.Blink
}

func (m adminModel) loadPending() tea.Cmd {
	review := m.review
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		pending, err := review.LoadPending(ctx)
		if err != nil {
			return flowErrMsg{err: err}
		}
		return pendingLoadedMsg{listings: pending}
	}
}

func (m adminModel) Update(msg tea.Msg) (adminModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.waiting {
			return m, nil
		}
		switch m.phase {
		case adminLogin:
			return m.updateLogin(msg)
		case adminQueue:
			return m.updateQueue(msg)
		case adminReason:
			return m.updateReason(msg)
		}

	case adminLoggedInMsg:
		m.waiting = false
		m.phase = adminQueue
		return m, tea.Batch(m.spin.Tick, m.loadPending())

	case pendingLoadedMsg:
		m.waiting = false
		if m.cursor >= len(msg.listings) {
			m.cursor = 0
		}
		return m, nil

	case reviewedMsg:
		m.waiting = false
		if m.cursor >= len(m.review.Pending()) {
			m.cursor = 0
		}
		return m, nil

	case flowErrMsg:
		m.waiting = false
		m.errMsg = userFacing(msg.err)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m adminModel) updateLogin(msg tea.KeyMsg) (adminModel, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.onEmail = !m.onEmail
		if m.onEmail {
			m.pass.Blur()
			m.email.Focus()
		} else {
			m.email.Blur()
			m.pass.Focus()
		}
		return m, nil
	case "enter":
		if m.onEmail {
			m.onEmail = false
			m.email.Blur()
			m.pass.Focus()
			return m, nil
		}
		m.waiting = true
		m.errMsg = ""
		review := m.review
		email, pass := m.email.Value(), m.pass.Value()
		return m, tea.Batch(m.spin.Tick, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			if err := review.Login(ctx, email, pass); err != nil {
				return flowErrMsg{err: err}
			}
			return adminLoggedInMsg{}
		})
	}

	var cmd tea.Cmd
	if m.onEmail {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.pass, cmd = m.pass.Update(msg)
	}
	return m, cmd
}

func (m adminModel) updateQueue(msg tea.KeyMsg) (adminModel, tea.Cmd) {
	pending := m.review.Pending()
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(pending)-1 {
			m.cursor++
		}
	case "a":
		if m.cursor < len(pending) {
			return m.submitVerdict(pending[m.cursor].ID, domain.ReviewDecision{Approve: true})
		}
	case "x":
		if m.cursor < len(pending) {
			m.phase = adminReason
			m.reason.SetValue("")
			m.reason.Focus()
		}
	case "r":
		m.waiting = true
		return m, tea.Batch(m.spin.Tick, m.loadPending())
	}
	return m, nil
}

func (m adminModel) updateReason(msg tea.KeyMsg) (adminModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		pending := m.review.Pending()
		if m.cursor >= len(pending) {
			m.phase = adminQueue
			return m, nil
		}
		m.phase = adminQueue
		return m.submitVerdict(pending[m.cursor].ID, domain.ReviewDecision{Reason: m.reason.Value()})
	case "esc":
		m.phase = adminQueue
		return m, nil
	}

	var cmd tea.Cmd
	m.reason, cmd = m.reason.Update(msg)
	return m, cmd
}

func (m adminModel) submitVerdict(listingID string, decision domain.ReviewDecision) (adminModel, tea.Cmd) {
	m.waiting = true
	m.errMsg = ""
	review := m.review
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := review.Review(ctx, listingID, decision); err != nil {
			return flowErrMsg{err: err}
		}
		return reviewedMsg{listingID: listingID}
	})
}

func (m adminModel) View() string {
	var b strings.Builder

	switch m.phase {
	case adminLogin:
		b.WriteString(m.theme.Title.Render("Admin sign in") + "\n\n")
		b.WriteString(m.theme.Label.Render("Email") + "\n" + m.email.View() + "\n")
		b.WriteString(m.theme.Label.Render("Password") + "\n" + m.pass.View() + "\n")
		b.WriteString("\n" + m.theme.Help.Render("tab switch · enter sign in"))

	case adminReason:
		b.WriteString(m.theme.Title.Render("Reject listing") + "\n\n")
		b.WriteString(m.reason.View() + "\n")
		b.WriteString("\n" + m.theme.Help.Render("enter reject · esc cancel"))

	default:
		b.WriteString(m.theme.Title.Render("Pending review") + "\n\n")
		pending := m.review.Pending()
		if len(pending) == 0 && !m.waiting {
			b.WriteString(m.theme.Help.Render("Queue is empty") + "\n")
		}
		for i, listing := range pending {
			line := fmt.Sprintf("%s · %d · ₹%d · %s", listing.Title, listing.Year, listing.Price, listing.City)
			if i == m.cursor {
				b.WriteString(m.theme.Selected.Render("> "+line) + "\n")
			} else {
				b.WriteString(m.theme.Value.Render("  "+line) + "\n")
			}
		}
		b.WriteString("\n" + m.theme.Help.Render("j/k move · a approve · x reject · r reload"))
	}

	if m.waiting {
		b.WriteString("\n" + m.spin.View() + m.theme.Help.Render(" please wait"))
	}
	if m.errMsg != "" {
		b.WriteString("\n" + m.theme.Error.Render(m.errMsg))
	}
	return m.theme.Box.Render(b.String())
}
