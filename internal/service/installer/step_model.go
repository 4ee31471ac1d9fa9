package installer

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/sanibot/internal/config"
	"github.com/sandevgo/sanibot/internal/providers/llm"
)

// OllamaModelStep lists the models the local Ollama daemon has pulled and
// lets the user pick one. Doubles as an availability probe: a daemon that
// is down surfaces here, before anything gets written to disk.
type OllamaModelStep struct {
	list     list.Model
	loading  bool
	fetching bool // Ensures we only trigger the API call once
	err      error
}

func NewOllamaModelStep() Step {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Select Ollama Model"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return &OllamaModelStep{
		list:    l,
		loading: true,
	}
}

func (s *OllamaModelStep) Init() tea.Cmd {
	return nil
}

func (s *OllamaModelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if state.Env.Generator != "ollama" {
		return nil, nil
	}

	// 1. Trigger fetch once when we enter the step
	if s.loading && !s.fetching {
		s.fetching = true
		baseURL := state.Env.OllamaBaseURL

		return s, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			p := llm.NewOllama(&config.OllamaConfig{BaseURL: baseURL}, &config.GenerationConfig{})
			models, err := p.Models(ctx)
			if err != nil {
				return errMsg(err)
			}

			var items []list.Item
			for _, name := range models {
				items = append(items, item{id: name, title: name})
			}
			return modelsMsg(items)
		}
	}

	// Update list size
	s.list.SetSize(width, height-4)

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case modelsMsg:
		s.list.SetItems(msg)
		s.loading = false
		s.fetching = false
		return s, nil

	case errMsg:
		s.loading = false
		s.fetching = false
		s.err = msg
		return s, nil // Return nil command to break the error loop

	case tea.KeyMsg:
		// If there's an error, allow retry with Enter
		if s.err != nil {
			if msg.String() == "enter" {
				s.err = nil
				s.loading = true
				s.fetching = false
				return s, nil
			}
			return s, nil
		}

		if msg.String() == "enter" {
			wasFiltering := s.list.FilterState() == list.Filtering
			s.list, cmd = s.list.Update(msg)

			if wasFiltering || s.list.FilterState() == list.Filtering {
				return s, cmd
			}

			if i, ok := s.list.SelectedItem().(item); ok {
				state.Env.OllamaModel = i.id
				return nil, nil
			}
			return s, cmd
		}
	}

	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *OllamaModelStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error fetching models: %v", s.err)) +
			"\n\nCheck the base URL and that the Ollama daemon is running.\n\n(press enter to retry, ctrl+c to quit)\n"
	}
	if s.loading {
		return "Fetching models from Ollama...\n"
	}
	return s.list.View()
}

// ModelNameStep collects the model name for the hosted backends, where
// there is no uniform listing endpoint to offer a picker.
type ModelNameStep struct {
	input     textinput.Model
	generator string
}

func NewModelNameStep() Step {
	return &ModelNameStep{}
}

func (s *ModelNameStep) Init() tea.Cmd {
	return nil
}

func (s *ModelNameStep) initGenerator(state *InstallState) bool {
	s.generator = state.Env.Generator
	if s.generator == "" || s.generator == "ollama" {
		return false
	}

	s.input = textinput.New()
	s.input.Focus()
	s.input.CharLimit = 128
	s.input.Width = 40

	switch s.generator {
	case "openai":
		s.input.Placeholder = "gpt-4o-mini"
	case "gemini":
		s.input.Placeholder = "gemini-1.5-flash"
	default:
		return false
	}
	return true
}

func (s *ModelNameStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.generator == "" {
		if !s.initGenerator(state) {
			return nil, nil
		}
		return s, textinput.Blink
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := s.input.Value()
		if val == "" {
			val = s.input.Placeholder
		}
		switch s.generator {
		case "openai":
			state.Env.OpenAIModel = val
		case "gemini":
			state.Env.GeminiModel = val
		}
		return nil, nil
	}
	return s, cmd
}

func (s *ModelNameStep) View(state *InstallState) string {
	if s.generator == "" {
		if !s.initGenerator(state) {
			return "Loading..."
		}
	}
	return "Enter the model name:\n\n" + s.input.View() + "\n\n(press enter to confirm)\n"
}
