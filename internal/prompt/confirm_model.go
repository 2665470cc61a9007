package prompt

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/git-submodule-hook/internal/models"
)

const confirmQuestion = "Do you wish to continue anyway?"

type keyMap struct {
	Yes       key.Binding
	No        key.Binding
	Interrupt key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "continue"),
		),
		// Enter accepts the default answer, which is No.
		No: key.NewBinding(
			key.WithKeys("n", "N", "enter"),
			key.WithHelp("n", "abort"),
		),
		Interrupt: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("ctrl+c", "cancel"),
		),
	}
}

// confirmModel is a minimal yes/no prompt. It quits on the first
// decisive keypress and records the answer for the caller.
type confirmModel struct {
	message string
	keys    keyMap
	answer  models.Answer
	done    bool
}

func newConfirmModel(message string) confirmModel {
	return confirmModel{
		message: message,
		keys:    defaultKeyMap(),
		answer:  models.AnswerNo,
	}
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Yes):
		m.answer = models.AnswerYes
		m.done = true
	case key.Matches(keyMsg, m.keys.No):
		m.answer = models.AnswerNo
		m.done = true
	case key.Matches(keyMsg, m.keys.Interrupt):
		m.answer = models.AnswerInterrupted
		m.done = true
	default:
		return m, nil
	}
	return m, tea.Quit
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	return m.message + "\n" + boldStyle.Render(confirmQuestion) + " [y/N] "
}
