package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true).
				PaddingLeft(2)

	unselectedItemStyle = lipgloss.NewStyle().
				PaddingLeft(4)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	chosenStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// TUIPrompter drives each prompt with a short-lived bubbletea program.
type TUIPrompter struct {
	in  io.Reader
	out io.Writer
}

func NewTUIPrompter(in io.Reader, out io.Writer) *TUIPrompter {
	return &TUIPrompter{in: in, out: out}
}

func (t *TUIPrompter) Choose(title string, options []string) (int, error) {
	final, err := t.run(newMenuModel(title, options))
	if err != nil {
		return -1, err
	}
	m := final.(menuModel)
	if m.aborted {
		return -1, ErrQuit
	}
	return m.cursor, nil
}

func (t *TUIPrompter) Ask(label string) (string, error) {
	final, err := t.run(newInputModel(label))
	if err != nil {
		return "", err
	}
	m := final.(inputModel)
	if m.aborted {
		return "", ErrQuit
	}
	return m.input.Value(), nil
}

func (t *TUIPrompter) run(model tea.Model) (tea.Model, error) {
	p := tea.NewProgram(model, tea.WithInput(t.in), tea.WithOutput(t.out))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("run prompt: %w", err)
	}
	return final, nil
}

// menuModel is a vertical option list navigated with the arrow keys.
// Digits jump straight to an option.
type menuModel struct {
	title   string
	options []string
	cursor  int
	done    bool
	aborted bool
}

func newMenuModel(title string, options []string) menuModel {
	return menuModel{title: title, options: options}
}

func (m menuModel) Init() tea.Cmd { return nil }

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "esc", "q":
		m.aborted = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.done = true
		return m, tea.Quit
	default:
		s := key.String()
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			if n := int(s[0] - '1'); n < len(m.options) {
				m.cursor = n
				m.done = true
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m menuModel) View() string {
	if m.done {
		return chosenStyle.Render(fmt.Sprintf("%s › %s", m.title, m.options[m.cursor])) + "\n"
	}
	if m.aborted {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	for i, opt := range m.options {
		label := fmt.Sprintf("%d. %s", i+1, opt)
		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render("▸ " + label))
		} else {
			b.WriteString(unselectedItemStyle.Render(label))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ navigate • enter select • esc quit"))
	b.WriteString("\n")
	return b.String()
}

type inputModel struct {
	label   string
	input   textinput.Model
	done    bool
	aborted bool
}

func newInputModel(label string) inputModel {
	ti := textinput.New()
	ti.Prompt = label + ": "
	ti.PromptStyle = titleStyle
	ti.CharLimit = 255
	ti.Focus()
	return inputModel{label: label, input: ti}
}

func (m inputModel) Init() tea.Cmd { return textinput.Blink }

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done {
		return chosenStyle.Render(fmt.Sprintf("%s: %s", m.label, m.input.Value())) + "\n"
	}
	if m.aborted {
		return ""
	}
	return m.input.View() + "\n"
}
