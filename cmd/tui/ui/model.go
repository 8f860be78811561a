package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Varun5711/contactkeeper/cmd/tui/client"
)

type View int

const (
	LoginView View = iota
	SignupView
	MenuView
	FormView
	ListView
)

const (
	menuAddContact = iota
	menuViewContacts
	menuLogout
)

type Model struct {
	currentView View
	login       *LoginModel
	signup      *SignupModel
	menu        *MenuModel
	form        *FormModel
	list        *ListModel
	client      *client.Client
	width       int
	height      int

	// Auth state
	isAuthenticated bool
	userName        string
	userEmail       string
}

func NewModel(c *client.Client) Model {
	loginModel := NewLoginModel()
	loginModel.SetClient(c)

	signupModel := NewSignupModel()
	signupModel.SetClient(c)

	formModel := NewFormModel()
	formModel.SetClient(c)

	listModel := NewListModel()
	listModel.SetClient(c)

	return Model{
		currentView: LoginView,
		login:       loginModel,
		signup:      signupModel,
		menu:        NewMenuModel(),
		form:        formModel,
		list:        listModel,
		client:      c,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case authSuccessMsg:
		m.isAuthenticated = true
		m.userName = msg.name
		m.userEmail = msg.email
		m.currentView = MenuView
		m.login.Reset()
		m.signup.Reset()
		return m, nil

	case editContactMsg:
		m.form.Edit(msg.contact)
		m.currentView = FormView
		return m, nil

	case contactSavedMsg:
		// the list reloads the next time it is shown
		m.list.loaded = false
		updatedForm, cmd := m.form.Update(msg)
		m.form = updatedForm.(*FormModel)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.isAuthenticated && (m.currentView == FormView || m.currentView == ListView) {
				if m.currentView == ListView && m.list.showingQR() {
					break
				}
				m.currentView = MenuView
				return m, nil
			}

		case "ctrl+s":
			// Toggle between login and signup
			if m.currentView == LoginView {
				m.currentView = SignupView
				return m, nil
			} else if m.currentView == SignupView {
				m.currentView = LoginView
				return m, nil
			}

		case "q":
			if m.currentView == MenuView {
				return m, tea.Quit
			}
		}
	}

	// Route to appropriate view
	switch m.currentView {
	case LoginView:
		updatedLogin, cmd := m.login.Update(msg)
		m.login = updatedLogin.(*LoginModel)
		return m, cmd

	case SignupView:
		updatedSignup, cmd := m.signup.Update(msg)
		m.signup = updatedSignup.(*SignupModel)
		return m, cmd

	case MenuView:
		updatedMenu, cmd := m.menu.Update(msg)
		m.menu = updatedMenu.(*MenuModel)
		if m.menu.selected != -1 {
			switch m.menu.selected {
			case menuAddContact:
				m.form.New()
				m.currentView = FormView
			case menuViewContacts:
				m.currentView = ListView
				// Reset list model to trigger auto-load
				m.list.loaded = false
				m.menu.selected = -1
				updatedList, listCmd := m.list.Update(nil)
				m.list = updatedList.(*ListModel)
				return m, listCmd
			case menuLogout:
				m.logout()
			}
			m.menu.selected = -1
		}
		return m, cmd

	case FormView:
		updatedForm, cmd := m.form.Update(msg)
		m.form = updatedForm.(*FormModel)
		return m, cmd

	case ListView:
		updatedList, cmd := m.list.Update(msg)
		m.list = updatedList.(*ListModel)
		return m, cmd
	}

	return m, nil
}

func (m *Model) logout() {
	m.client.SetToken("")
	m.isAuthenticated = false
	m.userName = ""
	m.userEmail = ""
	m.list.Clear()
	m.currentView = LoginView
}

func (m Model) View() string {
	// Status bar (shown when authenticated)
	var statusBar string
	if m.isAuthenticated && m.currentView != LoginView && m.currentView != SignupView {
		userInfo := lipgloss.NewStyle().
			Foreground(Success).
			Render("👤 " + m.userName)

		emailInfo := lipgloss.NewStyle().
			Foreground(Muted).
			Render(" (" + m.userEmail + ")")

		statusBar = StatusBarStyle.Render(userInfo + emailInfo)
	}

	var mainContent string
	switch m.currentView {
	case LoginView:
		mainContent = m.login.View()
	case SignupView:
		mainContent = m.signup.View()
	case MenuView:
		mainContent = m.menu.View()
	case FormView:
		mainContent = m.form.View()
	case ListView:
		mainContent = m.list.View()
	}

	if statusBar != "" {
		return lipgloss.JoinVertical(lipgloss.Left, statusBar, "\n", mainContent)
	}
	return mainContent
}
