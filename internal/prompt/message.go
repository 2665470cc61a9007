package prompt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/chmouel/git-submodule-hook/internal/models"
)

var (
	boldStyle     = lipgloss.NewStyle().Bold(true)
	unstagedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	stagedStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
)

// Message renders the confirmation text for the given diagnostic:
// the unstaged list first, then the staged list, each entry with the
// git command that fixes it. Wrapped to width when width > 0.
func Message(diag *models.Diagnostic, width int) string {
	var lines []string

	if len(diag.Unstaged) > 0 {
		lines = append(lines, fmt.Sprintf("%s %s %s",
			boldStyle.Render("The following submodules are"),
			unstagedStyle.Render("modified but not staged"),
			boldStyle.Render("for commit:"),
		))
		for _, ref := range diag.Unstaged {
			lines = append(lines, fmt.Sprintf("* %s (`git add %s` to add submodule to staging)",
				unstagedStyle.Render(ref.Path), ref.Path))
		}
	}

	if len(diag.Staged) > 0 {
		lines = append(lines, fmt.Sprintf("%s %s %s",
			boldStyle.Render("The following submodules are"),
			stagedStyle.Render("modified and staged"),
			boldStyle.Render("for commit:"),
		))
		for _, ref := range diag.Staged {
			lines = append(lines, fmt.Sprintf("* %s (`git restore --staged %s` to remove submodule from staging)",
				stagedStyle.Render(ref.Path), ref.Path))
		}
	}

	message := strings.Join(lines, "\n")
	if width > 0 {
		message = wordwrap.String(message, width)
	}
	return message
}
