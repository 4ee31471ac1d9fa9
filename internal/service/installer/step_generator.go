package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type generatorChoice struct {
	id    string
	label string
}

// GeneratorStep selects the answer generation backend
type GeneratorStep struct {
	choices []generatorChoice
	cursor  int
}

func NewGeneratorStep() Step {
	return &GeneratorStep{
		choices: []generatorChoice{
			{id: "ollama", label: "Ollama (local)"},
			{id: "openai", label: "OpenAI compatible API"},
			{id: "gemini", label: "Google Gemini"},
		},
		cursor: 0,
	}
}

func (s *GeneratorStep) Init() tea.Cmd {
	return nil
}

func (s *GeneratorStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			state.Env.Generator = s.choices[s.cursor].id
			return nil, nil
		}
	}
	return s, nil
}

func (s *GeneratorStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString("Select your answer generator:\n\n")
	for i, choice := range s.choices {
		cursor := " "
		if s.cursor == i {
			cursor = "❯"
			b.WriteString(selStyle.Render(fmt.Sprintf("%s %s", cursor, choice.label)) + "\n")
		} else {
			b.WriteString(itemStyle.Render(fmt.Sprintf("%s %s", cursor, choice.label)) + "\n")
		}
	}
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}
