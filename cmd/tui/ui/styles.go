package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Varun5711/contactkeeper/internal/models"
)

var (
	// Address-book palette
	Primary   = lipgloss.Color("#4F9DDE") // ink blue
	Secondary = lipgloss.Color("#8CC4EE") // pale blue
	Accent    = lipgloss.Color("#E8A33D") // tab amber
	Success   = lipgloss.Color("#5FBF77")
	Warning   = lipgloss.Color("#F2C14E")
	Error     = lipgloss.Color("#E5585B")
	Muted     = lipgloss.Color("#7A8491")
	Text      = lipgloss.Color("#ECEFF3")
	BgDark    = lipgloss.Color("#1B2230")

	Personal     = lipgloss.Color("#B48EDB")
	Professional = lipgloss.Color("#4FC1B9")

	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Padding(0, 1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2).
			MarginTop(1)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true).
				PaddingLeft(2)

	ItemStyle = lipgloss.NewStyle().
			Foreground(Text).
			PaddingLeft(2)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	InputStyle = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.NormalBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				Foreground(Text).
				Border(lipgloss.NormalBorder()).
				BorderForeground(Accent).
				Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Width(20)

	StatusBarStyle = lipgloss.NewStyle().
			Width(80).
			Align(lipgloss.Left).
			Background(BgDark).
			Padding(0, 2)

	ContactNameStyle = lipgloss.NewStyle().
				Foreground(Text).
				Bold(true)

	ContactDetailStyle = lipgloss.NewStyle().
				Foreground(Secondary)

	TimestampStyle = lipgloss.NewStyle().
			Foreground(Muted)
)

// CardStyle frames one contact in the list. The selected card gets the accent border.
func CardStyle(selected bool) lipgloss.Style {
	border := Muted
	if selected {
		border = Accent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 2).
		Width(70)
}

func typeColor(contactType string) lipgloss.Color {
	switch contactType {
	case models.ContactTypeProfessional:
		return Professional
	case models.ContactTypePersonal:
		return Personal
	}
	return Warning
}

// TypeBadge renders the contact type tag, or nothing when the type is unset.
func TypeBadge(contactType string) string {
	if contactType == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(typeColor(contactType)).
		Render("[" + contactType + "]")
}
