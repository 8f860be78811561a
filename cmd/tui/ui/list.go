package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Varun5711/contactkeeper/cmd/tui/client"
	"github.com/Varun5711/contactkeeper/internal/models"
	"github.com/Varun5711/contactkeeper/internal/qrcode"
)

type listContactsSuccessMsg struct {
	contacts []models.Contact
}

type listContactsErrorMsg struct {
	err error
}

type deleteContactSuccessMsg struct {
	id string
}

type deleteContactErrorMsg struct {
	err error
}

// editContactMsg asks the root model to open the form on a contact.
type editContactMsg struct {
	contact models.Contact
}

type ListModel struct {
	contacts      []models.Contact
	cursor        int
	loading       bool
	err           error
	status        string
	confirmDelete bool
	qr            string
	client        *client.Client
	loaded        bool
}

func (m *ListModel) Init() tea.Cmd {
	return nil
}

func NewListModel() *ListModel {
	return &ListModel{
		contacts: []models.Contact{},
	}
}

func (m *ListModel) SetClient(c *client.Client) {
	m.client = c
}

func (m *ListModel) Clear() {
	*m = ListModel{contacts: []models.Contact{}, client: m.client}
}

func (m *ListModel) showingQR() bool {
	return m.qr != ""
}

func (m *ListModel) selected() (models.Contact, bool) {
	if m.cursor < 0 || m.cursor >= len(m.contacts) {
		return models.Contact{}, false
	}
	return m.contacts[m.cursor], true
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func ago(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Hour:
		return fmt.Sprintf("%d min ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	}
}

func listContactsCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		contacts, err := c.ListContacts()
		if err != nil {
			return listContactsErrorMsg{err: err}
		}
		return listContactsSuccessMsg{contacts: contacts}
	}
}

func deleteContactCmd(c *client.Client, id string) tea.Cmd {
	return func() tea.Msg {
		if err := c.DeleteContact(id); err != nil {
			return deleteContactErrorMsg{err: err}
		}
		return deleteContactSuccessMsg{id: id}
	}
}

func (m *ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listContactsSuccessMsg:
		m.loading = false
		m.contacts = msg.contacts
		m.err = nil
		m.loaded = true
		if m.cursor >= len(m.contacts) {
			m.cursor = max(len(m.contacts)-1, 0)
		}
		return m, nil

	case listContactsErrorMsg:
		m.loading = false
		m.err = msg.err
		m.loaded = true
		return m, nil

	case deleteContactSuccessMsg:
		m.loading = false
		for i, c := range m.contacts {
			nameLine := ContactNameStyle.Render(truncate(c.Name, 40))
			if badge := TypeBadge(c.Type); badge != "" {
				nameLine += "  " + badge
			}

			var details []string
			if c.Email != "" {
				details = append(details, "✉ "+truncate(c.Email, 30))
			}
			if c.Phone != "" {
				details = append(details, "☎ "+c.Phone)
			}
			detailLine := ContactDetailStyle.Render(strings.Join(details, "   "))
			timeLine := TimestampStyle.Render("Added " + ago(c.CreatedAt))

			card := CardStyle(i == m.cursor).Render(lipgloss.JoinVertical(lipgloss.Left, nameLine, detailLine, timeLine))
			b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(card))
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(SuccessStyle.Render(m.status)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := InfoStyle.Render("↑/↓ navigate  •  enter QR  •  e edit  •  d delete  •  r refresh  •  esc back")
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(help))

	return BoxStyle.Width(76).Render(b.String())
}

func (m *ListModel) qrView() string {
	c, _ := m.selected()

	title := TitleStyle.Render("vCard · " + c.Name)
	help := InfoStyle.Render("scan to save this contact  •  any key to close")

	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Center, title, "", m.qr, help))
}
