package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Varun5711/contactkeeper/cmd/tui/client"
)

// minPasswordLength mirrors the server rule so obvious mistakes never leave the terminal.
const minPasswordLength = 6

type signupErrorMsg struct {
	err error
}

type SignupModel struct {
	nameInput     string
	emailInput    string
	passwordInput string
	focusedInput  int
	loading       bool
	err           error
	client        *client.Client
}

func NewSignupModel() *SignupModel {
	return &SignupModel{
		focusedInput: 0,
	}
}

func (m *SignupModel) SetClient(c *client.Client) {
	m.client = c
}

func (m *SignupModel) Reset() {
	m.nameInput = ""
	m.emailInput = ""
	m.passwordInput = ""
	m.focusedInput = 0
	m.loading = false
	m.err = nil
}

func (m *SignupModel) Init() tea.Cmd {
	return nil
}

func signupCmd(c *client.Client, name, email, password string) tea.Cmd {
	return func() tea.Msg {
		if _, err := c.Register(name, email, password); err != nil {
			return signupErrorMsg{err: err}
		}

		me, err := c.Me()
		if err != nil {
			return signupErrorMsg{err: err}
		}

		return authSuccessMsg{email: me.Email, name: me.Name}
	}
}

func (m *SignupModel) field() *string {
	switch m.focusedInput {
	case 0:
		return &m.nameInput
	case 1:
		return &m.emailInput
	default:
		return &m.passwordInput
	}
}

func (m *SignupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case signupErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "tab":
			m.focusedInput = (m.focusedInput + 1) % 3
		case "shift+tab":
			m.focusedInput = (m.focusedInput + 2) % 3
		case "enter":
			if strings.TrimSpace(m.nameInput) == "" {
				m.err = fmt.Errorf("name cannot be empty")
				return m, nil
			}
			if m.emailInput == "" {
				m.err = fmt.Errorf("email cannot be empty")
				return m, nil
			}
			if len([]rune(m.passwordInput)) < minPasswordLength {
				m.err = fmt.Errorf("password must be at least %d characters", minPasswordLength)
				return m, nil
			}

			if m.client == nil {
				m.err = fmt.Errorf("API client not configured")
				return m, nil
			}

			m.loading = true
			m.err = nil
			return m, signupCmd(m.client, m.nameInput, m.emailInput, m.passwordInput)
		case "backspace":
			f := m.field()
			*f = dropLast(*f)
		case "ctrl+l":
			m.nameInput = ""
			m.emailInput = ""
			m.passwordInput = ""
			m.err = nil
		default:
			if text := typed(msg); text != "" {
				f := m.field()
				*f += text
			}
		}
	}
	return m, nil
}

func (m *SignupModel) View() string {
	var b strings.Builder

	// Header
	title := lipgloss.NewStyle().
		Foreground(Success).
		Bold(true).
		Render("✨ SIGN UP")

	subtitle := lipgloss.NewStyle().
		Foreground(Muted).
		Render("Create an account to start keeping contacts.")

	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(2).
		Render(title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginBottom(3).
		Render(subtitle))
	b.WriteString("\n\n")

	// Name input
	nameLabel := LabelStyle.Width(15).Render("Name:")
	var nameInputStyle lipgloss.Style
	if m.focusedInput == 0 {
		nameInputStyle = FocusedInputStyle
	} else {
		nameInputStyle = InputStyle
	}
	nameValue := nameInputStyle.Width(50).Render(m.nameInput)
	nameField := lipgloss.JoinHorizontal(lipgloss.Left, nameLabel, nameValue)
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(nameField))
	b.WriteString("\n\n")

	// Email input
	emailLabel := LabelStyle.Width(15).Render("Email:")
	var emailInputStyle lipgloss.Style
	if m.focusedInput == 1 {
		emailInputStyle = FocusedInputStyle
	} else {
		emailInputStyle = InputStyle
	}
	emailValue := emailInputStyle.Width(50).Render(m.emailInput)
	emailField := lipgloss.JoinHorizontal(lipgloss.Left, emailLabel, emailValue)
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(emailField))
	b.WriteString("\n\n")

	// Password input
	passwordLabel := LabelStyle.Width(15).Render("Password:")
	var passwordInputStyle lipgloss.Style
	if m.focusedInput == 2 {
		passwordInputStyle = FocusedInputStyle
	} else {
		passwordInputStyle = InputStyle
	}
	// Mask password
	maskedPassword := masked(m.passwordInput)
	passwordValue := passwordInputStyle.Width(50).Render(maskedPassword)
	passwordField := lipgloss.JoinHorizontal(lipgloss.Left, passwordLabel, passwordValue)
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(passwordField))
	b.WriteString("\n")

	passHint := InfoStyle.Render(fmt.Sprintf("(min %d characters)", minPasswordLength))
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(passHint))
	b.WriteString("\n\n")

	// Status messages
	if m.loading {
		loading := InfoStyle.Render("🔄 Creating account...")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(loading))
		b.WriteString("\n")
	}

	if m.err != nil {
		errMsg := ErrorStyle.Render("❌ " + m.err.Error())
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(errMsg))
		b.WriteString("\n")
	}

	// Help
	b.WriteString("\n")
	help := InfoStyle.Render("tab switch  •  enter signup  •  ctrl+l clear  •  ctrl+s login  •  ctrl+c quit")
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(help))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Success).
		Padding(2, 4).
		Width(76).
		Render(b.String())
}
