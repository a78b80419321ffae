package rebase

import "context"

// PromptChoice is the outcome of a locate-or-skip question.
type PromptChoice string

const (
	ChoiceLocate PromptChoice = "locate"
	ChoiceSkip   PromptChoice = "skip"
)

// ExistenceOracle checks whether a candidate local URI refers to a file that
// currently exists. Implementations may hit the filesystem or an editor host
// API; the rebaser only ever consults it before committing a resolution to
// the cache.
type ExistenceOracle interface {
	Exists(ctx context.Context, localURI string) (bool, error)
}

// Prompter is the interactive fallback used when no automatic candidate for
// an artifact can be confirmed. AskLocateOrSkip waits indefinitely for the
// user; PickFile returns an empty string when the dialog was dismissed.
type Prompter interface {
	AskLocateOrSkip(ctx context.Context, artifactURI string) (PromptChoice, error)
	PickFile(ctx context.Context, seedDir string) (string, error)
}
