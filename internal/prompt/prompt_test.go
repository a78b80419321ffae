package prompt

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sariflens/sariflens/pkg/pathutil"
	"github.com/sariflens/sariflens/pkg/rebase"
)

func TestAskLocateOrSkip(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected rebase.PromptChoice
	}{
		{name: "locate short", input: "l\n", expected: rebase.ChoiceLocate},
		{name: "locate word", input: "Locate\n", expected: rebase.ChoiceLocate},
		{name: "skip", input: "s\n", expected: rebase.ChoiceSkip},
		{name: "garbage counts as skip", input: "wat\n", expected: rebase.ChoiceSkip},
		{name: "eof counts as skip", input: "", expected: rebase.ChoiceSkip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			term := NewTerminal(strings.NewReader(tt.input), &out, nil)
			choice, err := term.AskLocateOrSkip(context.Background(), "file:///scan/a.c")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, choice)
			assert.Contains(t, out.String(), "file:///scan/a.c")
		})
	}
}

func TestPickFile(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("src/main.c\n"), &out, nil)

	uri, err := term.PickFile(context.Background(), "file:///home/me/proj")
	require.NoError(t, err)

	abs, err := filepath.Abs("src/main.c")
	require.NoError(t, err)
	assert.Equal(t, pathutil.FileURI(abs), uri)
	assert.Contains(t, out.String(), "file:///home/me/proj")
}

func TestPickFileDismissed(t *testing.T) {
	term := NewTerminal(strings.NewReader("\n"), &bytes.Buffer{}, nil)
	uri, err := term.PickFile(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "", uri)
}

func TestPickFileURIPassthrough(t *testing.T) {
	term := NewTerminal(strings.NewReader("file:///abs/path.c\n"), &bytes.Buffer{}, nil)
	uri, err := term.PickFile(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "file:///abs/path.c", uri)
}
