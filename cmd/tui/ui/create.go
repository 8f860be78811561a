package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Varun5711/contactkeeper/cmd/tui/client"
	"github.com/Varun5711/contactkeeper/internal/models"
	"github.com/Varun5711/contactkeeper/internal/validation"
)

const (
	fieldName = iota
	fieldEmail
	fieldPhone
	fieldType
	fieldCount
)

var (
	fieldLabels = [fieldCount]string{"Name:", "Email:", "Phone:", "Type:"}
	typeCycle   = []string{models.ContactTypePersonal, models.ContactTypeProfessional}
)

type contactSavedMsg struct {
	contact *models.Contact
	created bool
}

type saveContactErrorMsg struct {
	err error
}

// FormModel creates a contact, or edits one when editingID is set.
type FormModel struct {
	inputs       [fieldCount]string
	focusedInput int
	editingID    string
	loading      bool
	saved        *models.Contact
	created      bool
	err          error
	client       *client.Client
}

func (m *FormModel) Init() tea.Cmd {
	return nil
}

func NewFormModel() *FormModel {
	return &FormModel{}
}

func (m *FormModel) SetClient(c *client.Client) {
	m.client = c
}

func (m *FormModel) New() {
	*m = FormModel{client: m.client}
}

func (m *FormModel) Edit(c models.Contact) {
	m.New()
	m.editingID = c.ID
	m.inputs[fieldName] = c.Name
	m.inputs[fieldEmail] = c.Email
	m.inputs[fieldPhone] = c.Phone
	m.inputs[fieldType] = c.Type
}

func (m *FormModel) fields() models.ContactFields {
	return models.ContactFields{
		Name:  strings.TrimSpace(m.inputs[fieldName]),
		Email: strings.TrimSpace(m.inputs[fieldEmail]),
		Phone: strings.TrimSpace(m.inputs[fieldPhone]),
		Type:  strings.TrimSpace(m.inputs[fieldType]),
	}
}

// validate applies the create rules locally. Edits are sparse on the server, so
// only a malformed non-empty email is refused.
func (m *FormModel) validate() error {
	f := m.fields()
	if m.editingID == "" && f.Name == "" {
		return fmt.Errorf("name is required")
	}
	if (m.editingID == "" || f.Email != "") && !validation.IsEmail(f.Email) {
		return fmt.Errorf("please include a valid email")
	}
	return nil
}

func saveContactCmd(c *client.Client, id string, fields models.ContactFields) tea.Cmd {
	return func() tea.Msg {
		if id == "" {
			contact, err := c.CreateContact(fields)
			if err != nil {
				return saveContactErrorMsg{err: err}
			}
			return contactSavedMsg{contact: contact, created: true}
		}

		contact, err := c.UpdateContact(id, fields)
		if err != nil {
			return saveContactErrorMsg{err: err}
		}
		return contactSavedMsg{contact: contact}
	}
}

func nextType(current string) string {
	for i, t := range typeCycle {
		if strings.EqualFold(t, current) {
			return typeCycle[(i+1)%len(typeCycle)]
		}
	}
	return typeCycle[0]
}

func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case contactSavedMsg:
		m.loading = false
		m.saved = msg.contact
		m.created = msg.created
		m.err = nil
		if msg.created {
			// ready for the next entry
			m.inputs = [fieldCount]string{}
			m.focusedInput = fieldName
		}
		return m, nil

	case saveContactErrorMsg:
		m.loading = false
		m.saved = nil
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "tab", "down":
			m.focusedInput = (m.focusedInput + 1) % fieldCount
		case "shift+tab", "up":
			m.focusedInput = (m.focusedInput + fieldCount - 1) % fieldCount
		case "ctrl+t":
			m.inputs[fieldType] = nextType(m.inputs[fieldType])
		case "enter":
			if err := m.validate(); err != nil {
				m.err = err
				return m, nil
			}

			if m.client == nil {
				m.err = fmt.Errorf("API client not configured")
				return m, nil
			}

			m.loading = true
			m.err = nil
			m.saved = nil
			return m, saveContactCmd(m.client, m.editingID, m.fields())
		case "backspace":
			m.inputs[m.focusedInput] = dropLast(m.inputs[m.focusedInput])
		case "ctrl+l":
			m.inputs = [fieldCount]string{}
			m.saved = nil
			m.err = nil
		default:
			if text := typed(msg); text != "" {
				m.inputs[m.focusedInput] += text
			}
		}
	}
	return m, nil
}

func (m *FormModel) View() string {
	var b strings.Builder

	title := "NEW CONTACT"
	if m.editingID != "" {
		title = "EDIT CONTACT"
	}
	icon := lipgloss.NewStyle().Foreground(Accent).Render("📇")
	header := icon + " " + TitleStyle.Render(title)
	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(1).
		MarginBottom(1).
		Render(header))
	b.WriteString("\n\n")

	for i := 0; i < fieldCount; i++ {
		label := LabelStyle.Width(12).Render(fieldLabels[i])
		style := InputStyle
		if m.focusedInput == i {
			style = FocusedInputStyle
		}
		row := lipgloss.JoinHorizontal(lipgloss.Left, label, style.Width(50).Render(m.inputs[i]))
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(row))
		b.WriteString("\n")
	}

	hint := "type is free-form; ctrl+t cycles personal/professional"
	if m.editingID != "" {
		hint = "empty fields keep their current value"
	}
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(InfoStyle.Render(hint)))
	b.WriteString("\n\n")

	if m.loading {
		loading := InfoStyle.Render("Saving contact...")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(loading))
		b.WriteString("\n")
	}

	if m.saved != nil {
		verb := "updated"
		if m.created {
			verb = "added"
		}
		done := SuccessStyle.Render(fmt.Sprintf("✓ %s %s", m.saved.Name, verb))
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(done))
		b.WriteString("\n")
	}

	if m.err != nil {
		errMsg := ErrorStyle.Render("Error: " + m.err.Error())
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(errMsg))
		b.WriteString("\n")
	}

	help := InfoStyle.Render("tab/↑/↓ switch  •  enter save  •  ctrl+l clear  •  esc back")
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(help))

	return BoxStyle.Width(76).Render(b.String())
}
