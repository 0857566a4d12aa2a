package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/abhisek/lsatarcade/internal/drill"
	"github.com/abhisek/lsatarcade/internal/profile"
	"github.com/abhisek/lsatarcade/internal/ui/components"
	"github.com/abhisek/lsatarcade/internal/ui/theme"
)

// input reads answers and chat lines. On a terminal it runs small bubbletea
// programs; piped input is read line by line so scripts can drive the CLI.
type input interface {
	// Pick shows an unanswered round and returns the picked letter, "" for
	// a skip, or more=false when the learner quits or input ends.
	Pick(ctx context.Context, r *profile.Round, width int) (letter string, more bool, err error)

	// Line reads one chat line; ok is false when input ends or the learner
	// quits.
	Line(ctx context.Context, label string) (line string, ok bool, err error)
}

func newInput(in io.Reader, out io.Writer) input {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return &teaInput{in: in, out: out}
	}
	return &lineInput{in: bufio.NewScanner(in), out: out}
}

type teaInput struct {
	in  io.Reader
	out io.Writer
}

func (t *teaInput) run(ctx context.Context, m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	).Run()
}

func (t *teaInput) Pick(ctx context.Context, r *profile.Round, width int) (string, bool, error) {
	final, err := t.run(ctx, components.NewPicker(r, width))
	if err != nil {
		return "", false, fmt.Errorf("answer picker: %w", err)
	}
	p := final.(components.Picker)
	switch {
	case p.Quit:
		return "", false, nil
	case p.Skipped:
		return "", true, nil
	}
	return p.Letter, true, nil
}

func (t *teaInput) Line(ctx context.Context, label string) (string, bool, error) {
	final, err := t.run(ctx, components.NewPrompt(label, "ask about a question type, a flaw, a strategy…", 2000))
	if err != nil {
		return "", false, fmt.Errorf("chat prompt: %w", err)
	}
	p := final.(components.Prompt)
	if p.Quit {
		return "", false, nil
	}
	return p.Value(), true, nil
}

type lineInput struct {
	in  *bufio.Scanner
	out io.Writer
}

// Pick prints the card and reads a letter. An empty line skips; q, quit or
// exit stop the session.
func (l *lineInput) Pick(_ context.Context, r *profile.Round, width int) (string, bool, error) {
	fmt.Fprintln(l.out, components.DrillCard(r, width))
	for {
		fmt.Fprint(l.out, "\nYour answer (A-E, enter to skip, q to quit): ")
		if !l.in.Scan() {
			fmt.Fprintln(l.out, theme.Hint.Render("\n(input closed)"))
			return "", false, l.in.Err()
		}
		s := strings.TrimSpace(l.in.Text())
		switch strings.ToLower(s) {
		case "":
			return "", true, nil
		case "q", "quit", "exit":
			return "", false, nil
		}
		if idx := drill.LetterIndex(strings.Trim(s, "().")); idx >= 0 {
			return drill.Letters[idx], true, nil
		}
		fmt.Fprintln(l.out, theme.Incorrect.Render("Pick one of A, B, C, D or E."))
	}
}

func (l *lineInput) Line(_ context.Context, label string) (string, bool, error) {
	fmt.Fprint(l.out, "\n"+label+" ")
	if !l.in.Scan() {
		fmt.Fprintln(l.out)
		return "", false, l.in.Err()
	}
	return strings.TrimSpace(l.in.Text()), true, nil
}
