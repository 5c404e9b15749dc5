package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
	"github.com/ankurdhir/BharatAutoBazaar-sub000/internal/services"
)

type fieldDef struct {
	key         string
	label       string
	placeholder string
}

func stepDefs(step domain.WizardStep) []fieldDef {
	switch step {
	case domain.StepDetails:
		return []fieldDef{
			{"brand_name", "Brand", "Maruti Suzuki"},
			{"model_name", "Model", "Swift"},
			{"variant_name", "Variant", "VXI"},
			{"year", "Year", "2019"},
			{"fuel_type", "Fuel type", "petrol / diesel / cng / electric"},
			{"transmission", "Transmission", "manual / automatic"},
			{"km_driven", "Kilometers driven", "45000"},
			{"owner_number", "Number of owners", "1"},
		}
	case domain.StepPricing:
		return []fieldDef{
			{"price", "Asking price (₹)", "550000"},
			{"urgency", "How soon do you want to sell", "within_month"},
		}
	case domain.StepContactLocation:
		return []fieldDef{
			{"city_name", "City", "Pune"},
			{"state_name", "State", "Maharashtra"},
			{"area", "Area", "Baner"},
			{"sellerName", "Your name", "Asha"},
			{"phoneNumber", "Contact phone", "+919876543210"},
			{"email", "Contact email (optional)", "asha@example.com"},
			{"description", "Description (optional)", "Well maintained, single owner"},
		}
	case domain.StepMedia:
		return []fieldDef{
			{"path", "Image file to add", "/path/to/front.jpg"},
		}
	}
	return nil
}

func stepTitle(step domain.WizardStep) string {
	switch step {
	case domain.StepDetails:
		return "Car details"
	case domain.StepPricing:
		return "Pricing"
	case domain.StepContactLocation:
		return "Contact & location"
	case domain.StepMedia:
		return "Photos"
	case domain.StepSubmitted:
		return "Submitted"
	}
	return ""
}

// wizardModel drives the multi-step sell flow on screen. The wizard service
// owns the draft and all gating; the model only collects keystrokes and
// renders its state.
type wizardModel struct {
	wizard  *services.ListingWizardImpl
	theme   Theme
	inputs  []textinput.Model
	defs    []fieldDef
	focus   int
	spin    spinner.Model
	waiting bool
	confirm bool
	errMsg  string
	done    bool
}

func newWizardModel(wizard *services.ListingWizardImpl, theme Theme) wizardModel {
	m := wizardModel{
		wizard: wizard,
		theme:  theme,
		spin:   spinner.New(),
	}
	m.spin.Spinner = spinner.Dot
	m.loadStep()
	return m
}

func (m wizardModel) Init() tea.Cmd {
	return textinput.Blink
}

// loadStep rebuilds the inputs for the wizard's current step, prefilled from
// the draft so Back never loses anything
func (m *wizardModel) loadStep() {
	m.defs = stepDefs(m.wizard.Step())
	draft := m.wizard.Draft()
	values := draftValues(&draft)

	m.inputs = make([]textinput.Model, len(m.defs))
	for i, def := range m.defs {
		input := textinput.New()
		input.Placeholder = def.placeholder
		input.CharLimit = 128
		input.SetValue(values[def.key])
		m.inputs[i] = input
	}
	m.focus = 0
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
}

func draftValues(d *domain.ListingDraft) map[string]string {
	return map[string]string{
		"brand_name":   d.Vehicle.Brand,
		"model_name":   d.Vehicle.Model,
		"variant_name": d.Vehicle.Variant,
		"year":         d.Vehicle.Year,
		"fuel_type":    d.Vehicle.FuelType,
		"transmission": d.Vehicle.Transmission,
		"km_driven":    d.Vehicle.KmDriven,
		"owner_number": d.Vehicle.OwnerNumber,
		"price":        d.Pricing.Price,
		"urgency":      d.Pricing.Urgency,
		"city_name":    d.Location.City,
		"state_name":   d.Location.State,
		"area":         d.Location.Area,
		"sellerName":   d.Contact.SellerName,
		"phoneNumber":  d.Contact.PhoneNumber,
		"email":        d.Contact.Email,
		"description":  d.Description,
	}
}

// applyStep pushes the current inputs into the wizard's draft
func (m *wizardModel) applyStep() {
	values := make(map[string]string, len(m.defs))
	for i, def := range m.defs {
		values[def.key] = strings.TrimSpace(m.inputs[i].Value())
	}

	switch m.wizard.Step() {
	case domain.StepDetails:
		m.wizard.SetVehicle(domain.VehicleDetails{
			Brand:        values["brand_name"],
			Model:        values["model_name"],
			Variant:      values["variant_name"],
			Year:         values["year"],
			FuelType:     values["fuel_type"],
			Transmission: values["transmission"],
			KmDriven:     values["km_driven"],
			OwnerNumber:  values["owner_number"],
		})
	case domain.StepPricing:
		m.wizard.SetPricing(domain.PricingInfo{
			Price:   values["price"],
			Urgency: values["urgency"],
		})
	case domain.StepContactLocation:
		m.wizard.SetLocation(domain.LocationInfo{
			City:  values["city_name"],
			State: values["state_name"],
			Area:  values["area"],
		})
		m.wizard.SetContact(domain.ContactInfo{
			SellerName:  values["sellerName"],
			PhoneNumber: values["phoneNumber"],
			Email:       values["email"],
		})
		m.wizard.SetDescription(values["description"])
	}
}

func (m wizardModel) Update(msg tea.Msg) (wizardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.waiting || m.done {
			return m, nil
		}
		if m.confirm {
			return m.updateConfirm(msg)
		}
		switch msg.String() {
		case "tab", "down":
			m.setFocus(m.focus + 1)
			return m, nil
		case "shift+tab", "up":
			m.setFocus(m.focus - 1)
			return m, nil
		case "enter":
			if m.wizard.Step() == domain.StepMedia {
				return m.addImage()
			}
			if m.focus < len(m.inputs)-1 {
				m.setFocus(m.focus + 1)
				return m, nil
			}
			return m.next()
		case "ctrl+n":
			if m.wizard.Step() != domain.StepMedia {
				return m.next()
			}
		case "ctrl+b":
			m.applyStep()
			m.wizard.Back()
			m.loadStep()
			m.errMsg = ""
			return m, nil
		case "ctrl+s":
			if m.wizard.Step() == domain.StepMedia {
				m.confirm = true
			}
			return m, nil
		case "ctrl+x":
			if m.wizard.Step() == domain.StepMedia {
				return m.removeLastImage()
			}
		}

	case imagesAddedMsg:
		m.waiting = false
		m.inputs[0].SetValue("")
		return m, nil

	case imageRemovedMsg:
		m.waiting = false
		return m, nil

	case submittedMsg:
		m.waiting = false
		m.done = true
		return m, nil

	case flowErrMsg:
		m.waiting = false
		m.errMsg = userFacing(msg.err)
		// A rejected submit may have moved the wizard to the step that
		// owns the failing field.
		m.loadStep()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	if len(m.inputs) > 0 {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *wizardModel) setFocus(index int) {
	if len(m.inputs) == 0 {
		return
	}
	if index < 0 {
		index = len(m.inputs) - 1
	}
	if index >= len(m.inputs) {
		index = 0
	}
	m.inputs[m.focus].Blur()
	m.focus = index
	m.inputs[m.focus].Focus()
}

func (m wizardModel) next() (wizardModel, tea.Cmd) {
	m.applyStep()
	if err := m.wizard.Next(); err != nil {
		m.errMsg = userFacing(err)
		return m, nil
	}
	m.errMsg = ""
	m.loadStep()
	return m, nil
}

func (m wizardModel) addImage() (wizardModel, tea.Cmd) {
	path := strings.TrimSpace(m.inputs[0].Value())
	if path == "" {
		return m, nil
	}
	m.waiting = true
	m.errMsg = ""
	wizard := m.wizard
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		content, err := os.ReadFile(path)
		if err != nil {
			return flowErrMsg{err: fmt.Errorf("could not read %s: %w", path, err)}
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		media, err := wizard.AddImages(ctx, []domain.MediaFile{{
			Name:        filepath.Base(path),
			ContentType: contentTypeFor(path),
			Content:     content,
		}})
		if err != nil {
			return flowErrMsg{err: err}
		}
		return imagesAddedMsg{media: media}
	})
}

func (m wizardModel) removeLastImage() (wizardModel, tea.Cmd) {
	media := m.wizard.Media()
	if len(media) == 0 {
		return m, nil
	}
	localID := media[len(media)-1].LocalID
	m.waiting = true
	wizard := m.wizard
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := wizard.RemoveImage(ctx, localID); err != nil {
			return flowErrMsg{err: err}
		}
		return imageRemovedMsg{}
	})
}

func (m wizardModel) updateConfirm(msg tea.KeyMsg) (wizardModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.confirm = false
		m.waiting = true
		wizard := m.wizard
		return m, tea.Batch(m.spin.Tick, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			id, err := wizard.Submit(ctx)
			if err != nil {
				return flowErrMsg{err: err}
			}
			return submittedMsg{listingID: id}
		})
	case "n", "N", "esc":
		m.confirm = false
	}
	return m, nil
}

func (m wizardModel) View() string {
	if m.done {
		body := m.theme.Title.Render("Listing submitted") + "\n\n" +
			m.theme.Subtitle.Render("Your car is under review and will appear once approved.") + "\n" +
			m.theme.Label.Render("Reference: ") + m.theme.Value.Render(m.wizard.ListingID())
		return m.theme.Box.Render(body)
	}

	var b strings.Builder
	b.WriteString(m.renderProgress() + "\n\n")
	b.WriteString(m.theme.Title.Render(stepTitle(m.wizard.Step())) + "\n\n")

	fieldErrs := m.wizard.FieldErrors()
	for i, def := range m.defs {
		label := m.theme.Label.Render(def.label)
		if i == m.focus {
			label = m.theme.Selected.Render(def.label)
		}
		b.WriteString(label + "\n" + m.inputs[i].View() + "\n")
		if msg, ok := fieldErrs[def.key]; ok {
			b.WriteString(m.theme.Error.Render(msg) + "\n")
		}
	}

	if m.wizard.Step() == domain.StepMedia {
		b.WriteString("\n" + m.renderMedia())
	}

	if m.waiting {
		b.WriteString("\n" + m.spin.View() + m.theme.Help.Render(" please wait") + "\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + m.theme.Error.Render(m.errMsg) + "\n")
	}

	help := "tab next field · enter continue · ctrl+b back"
	if m.wizard.Step() == domain.StepMedia {
		help = "enter add image · ctrl+x remove last · ctrl+s submit · ctrl+b back"
	}
	b.WriteString("\n" + m.theme.Help.Render(help))

	view := m.theme.Box.Render(b.String())
	if m.confirm {
		modal := m.theme.Modal.Render(
			m.theme.Title.Render("Submit listing?") + "\n\n" +
				m.theme.Subtitle.Render("The listing goes to review and cannot be edited after.") + "\n\n" +
				m.theme.Help.Render("y submit · n cancel"))
		return view + "\n" + modal
	}
	return view
}

func (m wizardModel) renderProgress() string {
	steps := []domain.WizardStep{domain.StepDetails, domain.StepPricing, domain.StepContactLocation, domain.StepMedia}
	parts := make([]string, 0, len(steps))
	current := m.wizard.Step()
	for _, step := range steps {
		name := stepTitle(step)
		switch {
		case step == current:
			parts = append(parts, m.theme.Selected.Render("● "+name))
		case step < current:
			parts = append(parts, m.theme.StepDone.Render("✓ "+name))
		default:
			parts = append(parts, m.theme.StepTodo.Render("○ "+name))
		}
	}
	return strings.Join(parts, m.theme.StepTodo.Render("  "))
}

func (m wizardModel) renderMedia() string {
	media := m.wizard.Media()
	if len(media) == 0 {
		return m.theme.Help.Render("No photos yet, at least one is required") + "\n"
	}
	var b strings.Builder
	b.WriteString(m.theme.Label.Render(fmt.Sprintf("Photos (%d)", len(media))) + "\n")
	for _, item := range media {
		status := m.theme.StepDone.Render("uploaded")
		if !item.Uploaded() {
			status = m.theme.Help.Render("uploading")
		}
		b.WriteString("  " + m.theme.Value.Render(item.FileName) + " " + status + "\n")
	}
	return b.String()
}

func contentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
