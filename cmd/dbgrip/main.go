package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/verdande/dbgrip/internal/app"
	"github.com/verdande/dbgrip/internal/config"
	"github.com/verdande/dbgrip/internal/db"
	"github.com/verdande/dbgrip/internal/history"
	"github.com/verdande/dbgrip/internal/vault"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Warning: Could not load config: %v (using defaults)\n", err)
		cfg = config.Defaults()
	}

	var hist *history.Store
	if cfg.History.Enabled {
		path, err := cfg.HistoryPath()
		if err == nil {
			hist, err = history.Open(path)
		}
		if err != nil {
			log.Printf("Warning: query history disabled: %v\n", err)
		}
	}

	registry := db.NewRegistry()
	defer registry.CloseAll()
	if hist != nil {
		defer hist.Close()
	}

	model := app.New(cfg, registry, hist, vault.NewPasswordStore(cfg.Secrets.UseKeyring))

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
