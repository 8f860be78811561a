package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Varun5711/contactkeeper/cmd/tui/client"
	"github.com/Varun5711/contactkeeper/cmd/tui/ui"
	"github.com/Varun5711/contactkeeper/internal/config"
)

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	apiClient := client.New(cfg.APIURL, cfg.AuthHeader, cfg.Timeout)

	p := tea.NewProgram(
		ui.NewModel(apiClient),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
