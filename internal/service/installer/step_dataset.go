package installer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	fs "github.com/sandevgo/sanibot/configs"
	"github.com/sandevgo/sanibot/internal/config"
)

// DatasetStep picks where the facility dataset lives. When nothing exists
// at the chosen path the embedded starter dataset is written there; an
// existing file is kept as is, so a curated dataset never gets clobbered.
type DatasetStep struct {
	input textinput.Model
	err   error
}

func NewDatasetStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.Width = 60
	ti.Placeholder = filepath.Join(config.GetRuntimePath(), "dataset.json")
	return &DatasetStep{input: ti}
}

func (s *DatasetStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *DatasetStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		path := s.input.Value()
		if path == "" {
			path = s.input.Placeholder
		}

		if err := s.ensureDataset(path); err != nil {
			s.err = err
			return s, nil
		}

		state.Env.DatasetPath = path
		return nil, nil
	}
	return s, cmd
}

func (s *DatasetStep) ensureDataset(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create dataset directory: %w", err)
	}

	data, err := fs.FS.ReadFile("dataset.json")
	if err != nil {
		return fmt.Errorf("failed to read embedded dataset: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write starter dataset: %w", err)
	}
	return nil
}

func (s *DatasetStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	return "Path of the facility dataset (empty writes the starter dataset):\n\n" +
		s.input.View() + "\n\n(press enter to confirm)\n"
}
