package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Start runs the game until the player quits.
func Start(opts Options) error {
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	_, err := tea.NewProgram(NewModel(opts), programOpts...).Run()
	return err
}
