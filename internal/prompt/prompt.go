package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/sariflens/sariflens/pkg/pathutil"
	"github.com/sariflens/sariflens/pkg/rebase"
)

// Terminal implements the rebaser's Prompter over stdin/stderr for CLI use.
// An editor host would supply its own dialog-backed implementation instead.
type Terminal struct {
	in     *bufio.Reader
	out    io.Writer
	logger hclog.Logger
}

func NewTerminal(in io.Reader, out io.Writer, logger hclog.Logger) *Terminal {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Terminal{in: bufio.NewReader(in), out: out, logger: logger}
}

// AskLocateOrSkip asks whether the user wants to locate the file for an
// artifact manually. EOF and unrecognized answers count as skip.
func (t *Terminal) AskLocateOrSkip(_ context.Context, artifactURI string) (rebase.PromptChoice, error) {
	fmt.Fprintf(t.out, "No local file found for %s\n  [l] locate manually  [s] skip\n> ", artifactURI)
	line, err := t.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return rebase.ChoiceSkip, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "l", "locate":
		return rebase.ChoiceLocate, nil
	default:
		return rebase.ChoiceSkip, nil
	}
}

// PickFile reads a local path from the user and returns it as a file URI. An
// empty answer means the prompt was dismissed.
func (t *Terminal) PickFile(_ context.Context, seedDir string) (string, error) {
	if seedDir != "" {
		fmt.Fprintf(t.out, "Enter the file path (e.g. under %s):\n> ", seedDir)
	} else {
		fmt.Fprint(t.out, "Enter the file path:\n> ")
	}
	line, err := t.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	answer := strings.TrimSpace(line)
	if answer == "" {
		return "", nil
	}
	if strings.HasPrefix(answer, "file://") {
		return answer, nil
	}
	abs, err := filepath.Abs(answer)
	if err != nil {
		return "", err
	}
	return pathutil.FileURI(abs), nil
}
