package viz

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/termfolio/internal/clock"
	"github.com/san-kum/termfolio/internal/config"
)

// RunInteractive shows the page full screen until the user quits.
func RunInteractive(opts Options) error {
	m, err := NewModel(opts)
	if err != nil {
		return err
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	var p *tea.Program
	m.checks = clock.NewDebouncer(clock.Real(), cfg.ScrollDebounce(), func() {
		p.Send(visibilityCheckMsg{})
	})
	p = tea.NewProgram(m, tea.WithAltScreen())

	m.logger.Info("page opened", "theme", m.theme.Name, "sections", len(m.blocks))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running page: %w", err)
	}
	return nil
}
