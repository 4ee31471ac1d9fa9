package installer

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// OpenAIURLStep collects the base URL for OpenAI compatible servers, which
// covers self-hosted gateways as well as the official API.
type OpenAIURLStep struct {
	input textinput.Model
}

func NewOpenAIURLStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.Placeholder = "https://api.openai.com"
	ti.Width = 50
	return &OpenAIURLStep{input: ti}
}

func (s *OpenAIURLStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *OpenAIURLStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if state.Env.Generator != "openai" {
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := strings.TrimSpace(s.input.Value())
		if val == "" {
			val = s.input.Placeholder
		}
		state.Env.OpenAIBaseURL = val
		return nil, nil
	}
	return s, cmd
}

func (s *OpenAIURLStep) View(state *InstallState) string {
	return "Enter OpenAI compatible Base URL:\n\n" + s.input.View() + "\n\n(press enter to confirm)\n"
}
