package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/erg0nix/ralphed/internal/core"
)

// ErrCancelled is returned when the user aborts the prompts.
var ErrCancelled = errors.New("setup cancelled")

// Prompter collects the wizard answers. Implementations return ErrCancelled when the user aborts.
type Prompter interface {
	Ask(ctx context.Context, defaults core.Answers, offerAutoGenerate bool) (core.Answers, error)
}

type formPrompter struct {
	accessible bool
	// in and out are only used in accessible mode; the full-screen form needs the real terminal.
	in  io.Reader
	out io.Writer
}

func (p formPrompter) Ask(ctx context.Context, defaults core.Answers, offerAutoGenerate bool) (core.Answers, error) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	answers := defaults
	fields := []huh.Field{
		huh.NewInput().
			Title("Project directory").
			Value(&answers.Directory).
			Validate(directoryValidator(defaults.Directory)),
		huh.NewInput().
			Title("Path to PRD file or folder (optional)").
			Value(&answers.RequirementsPath),
	}
	if offerAutoGenerate {
		fields = append(fields, huh.NewConfirm().
			Title("Auto-generate features from PRD using Claude Code?").
			Affirmative("yes").
			Negative("no").
			Value(&answers.AutoGenerate))
	} else {
		answers.AutoGenerate = false
	}

	form := huh.NewForm(huh.NewGroup(fields...)).WithAccessible(p.accessible)

	var input *lineReader
	if p.accessible {
		input = newLineReader(p.in)
		form = form.WithInput(input).WithOutput(p.out)
	}

	done := make(chan error, 1)
	go func() { done <- form.RunWithContext(ctx) }()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		// An accessible prompt blocked on a read cannot be interrupted; abandon it.
		return defaults, ErrCancelled
	}

	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) || ctx.Err() != nil {
			return defaults, ErrCancelled
		}
		return defaults, fmt.Errorf("prompt: %w", err)
	}
	if input != nil && input.exhausted() {
		return defaults, ErrCancelled
	}

	answers.Directory = strings.TrimSpace(answers.Directory)
	if answers.Directory == "" {
		answers.Directory = defaults.Directory
	}
	answers.RequirementsPath = strings.TrimSpace(answers.RequirementsPath)
	return answers, nil
}

// directoryValidator rejects a blank directory unless a default will take its place.
func directoryValidator(fallback string) func(string) error {
	return func(value string) error {
		if strings.TrimSpace(value) == "" && strings.TrimSpace(fallback) == "" {
			return errors.New("directory is required")
		}
		return nil
	}
}

// lineReader hands out at most one line per Read so each accessible prompt consumes only its
// own answer. It remembers when a prompt found the input already closed.
type lineReader struct {
	r       *bufio.Reader
	partial bool
	eof     bool
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

func (l *lineReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n := 0
	for n < len(p) {
		b, err := l.r.ReadByte()
		if err != nil {
			if n > 0 {
				l.partial = true
				return n, nil
			}
			if errors.Is(err, io.EOF) {
				// An unterminated last line still counts as an answer.
				if l.partial {
					l.partial = false
				} else {
					l.eof = true
				}
			}
			return 0, err
		}
		p[n] = b
		n++
		if b == '\n' {
			break
		}
	}
	l.partial = p[n-1] != '\n'
	return n, nil
}

func (l *lineReader) exhausted() bool {
	return l.eof
}
