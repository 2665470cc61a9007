// Package prompt asks the committer whether to continue despite
// modified submodules. On a terminal the question is a small bubbletea
// model; otherwise a plain line-based fallback reads from stdin, the
// same split the interactive pieces of this codebase have always used.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/cancelreader"
	"golang.org/x/term"

	"github.com/chmouel/git-submodule-hook/internal/log"
	"github.com/chmouel/git-submodule-hook/internal/models"
)

// Prompter renders the submodule lists and collects a yes/no answer.
type Prompter struct {
	in         io.Reader
	out        io.Writer
	isTerminal bool
	width      int
}

// New builds a Prompter on stdin/stderr. Output goes to stderr so the
// prompt stays visible when git redirects hook stdout.
func New() *Prompter {
	p := &Prompter{
		in:  os.Stdin,
		out: os.Stderr,
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		p.isTerminal = true
		if w, _, err := term.GetSize(int(os.Stderr.Fd())); err == nil {
			p.width = w
		}
	}
	return p
}

// Confirm shows both submodule lists and waits for the committer's
// answer. Cancellation (Ctrl+C or ctx) yields AnswerInterrupted.
func (p *Prompter) Confirm(ctx context.Context, diag *models.Diagnostic) (models.Answer, error) {
	message := Message(diag, p.width)

	if p.isTerminal {
		return p.confirmInteractive(ctx, message)
	}
	return p.confirmPlain(ctx, message)
}

func (p *Prompter) confirmInteractive(ctx context.Context, message string) (models.Answer, error) {
	program := tea.NewProgram(newConfirmModel(message),
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := program.Run()
	if err != nil {
		// bubbletea reports context cancellation as a run error.
		if ctx.Err() != nil {
			return models.AnswerInterrupted, nil
		}
		return models.AnswerInterrupted, fmt.Errorf("confirmation prompt: %w", err)
	}

	m, ok := final.(confirmModel)
	if !ok {
		return models.AnswerInterrupted, fmt.Errorf("confirmation prompt: unexpected model %T", final)
	}
	log.Printf("prompt: answer %d", m.answer)
	return m.answer, nil
}

// confirmPlain is the non-terminal path: print the message, read one
// line. EOF means nobody can answer, so the default No applies.
func (p *Prompter) confirmPlain(ctx context.Context, message string) (models.Answer, error) {
	fmt.Fprintln(p.out, message)
	fmt.Fprintf(p.out, "%s [y/N] ", confirmQuestion)

	// A cancelable reader lets the blocked Read return on context
	// cancellation instead of outliving the prompt. Readers without
	// cancellation support fall back to the plain reader.
	in := p.in
	cr, err := cancelreader.NewReader(p.in)
	if err == nil {
		in = cr
		defer func() { _ = cr.Close() }()
	}

	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := bufio.NewReader(in).ReadString('\n')
		ch <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		if cr != nil {
			cr.Cancel()
		}
		return models.AnswerInterrupted, nil
	case res := <-ch:
		if res.err != nil && res.line == "" {
			log.Printf("prompt: no answer available (%v), defaulting to no", res.err)
			return models.AnswerNo, nil
		}
		switch strings.ToLower(strings.TrimSpace(res.line)) {
		case "y", "yes":
			return models.AnswerYes, nil
		default:
			return models.AnswerNo, nil
		}
	}
}
