package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type transportChoice struct {
	label    string
	http     bool
	telegram bool
}

// TransportsStep selects which transports the start command should run
type TransportsStep struct {
	choices []transportChoice
	cursor  int
}

func NewTransportsStep() Step {
	return &TransportsStep{
		choices: []transportChoice{
			{label: "Web API (HTTP)", http: true},
			{label: "Telegram", telegram: true},
			{label: "Web API + Telegram", http: true, telegram: true},
		},
		cursor: 0,
	}
}

func (s *TransportsStep) Init() tea.Cmd {
	return nil
}

func (s *TransportsStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
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
			choice := s.choices[s.cursor]
			state.Env.EnableHTTP = fmt.Sprintf("%t", choice.http)
			state.Env.EnableTelegram = fmt.Sprintf("%t", choice.telegram)
			return nil, nil
		}
	}
	return s, nil
}

func (s *TransportsStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString("Select the transports to run:\n\n")
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
