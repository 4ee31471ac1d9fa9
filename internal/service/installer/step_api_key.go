package installer

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// APIKeyStep collects the generator API key. Ollama runs locally without
// one, so the step skips itself for that backend.
type APIKeyStep struct {
	input     textinput.Model
	generator string
	title     string
}

func NewAPIKeyStep() Step {
	return &APIKeyStep{}
}

func (s *APIKeyStep) Init() tea.Cmd {
	return nil
}

func (s *APIKeyStep) initGenerator(state *InstallState) bool {
	s.generator = state.Env.Generator
	if s.generator == "" || s.generator == "ollama" {
		return false
	}

	switch s.generator {
	case "openai":
		s.title = "OpenAI API Key"
	case "gemini":
		s.title = "Gemini API Key"
	default:
		return false
	}

	s.input = textinput.New()
	s.input.Focus()
	s.input.CharLimit = 255
	s.input.Width = 40
	s.input.EchoMode = textinput.EchoPassword
	s.input.EchoCharacter = '•'

	switch s.generator {
	case "openai":
		s.input.Placeholder = "sk-..."
	case "gemini":
		s.input.Placeholder = "AIza..."
	}
	return true
}

func (s *APIKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.generator == "" {
		if !s.initGenerator(state) {
			return nil, nil
		}
		return s, textinput.Blink
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			switch s.generator {
			case "openai":
				state.Env.OpenAIAPIKey = s.input.Value()
			case "gemini":
				state.Env.GeminiAPIKey = s.input.Value()
			}
			return nil, nil
		}
	}
	return s, cmd
}

func (s *APIKeyStep) View(state *InstallState) string {
	if s.generator == "" {
		if !s.initGenerator(state) {
			return "Loading..."
		}
	}

	return fmt.Sprintf("Enter your %s:\n\n%s\n\n(press enter to confirm)\n",
		s.title, s.input.View())
}
