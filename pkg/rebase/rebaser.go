package rebase

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/singleflight"

	"github.com/sariflens/sariflens/pkg/pathutil"
)

// Options carries everything a Rebaser needs at construction time. Artifacts
// is the full set of artifact URIs referenced by the loaded log;
// WorkspaceFiles is a read-only snapshot of the local file URIs currently
// known (the rebaser never watches the filesystem itself).
type Options struct {
	Artifacts       []string
	WorkspaceFiles  []string
	URIBases        []string
	CaseInsensitive bool
	Oracle          ExistenceOracle
	Prompter        Prompter
	Logger          hclog.Logger
}

// Rebaser translates artifact URIs recorded in a log at scan time into local
// URIs valid in the current workspace, and back. One instance is constructed
// per loaded log collection; all state (caches, override bases, the distinct
// name index) is owned by the instance, so independent rebasers never
// cross-contaminate.
type Rebaser struct {
	mu              sync.Mutex
	bases           []string
	localByArtifact map[string]string // value "" is a tombstone: user declined to locate
	artifactByLocal map[string]string
	workspace       []string

	artifacts       []string
	distinct        map[string]string
	caseInsensitive bool

	oracle   ExistenceOracle
	prompter Prompter
	logger   hclog.Logger
	flight   singleflight.Group
}

// New constructs a Rebaser for one loaded log collection.
func New(opts Options) *Rebaser {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Rebaser{
		bases:           append([]string(nil), opts.URIBases...),
		localByArtifact: make(map[string]string),
		artifactByLocal: make(map[string]string),
		workspace:       append([]string(nil), opts.WorkspaceFiles...),
		artifacts:       append([]string(nil), opts.Artifacts...),
		distinct:        DistinctIndexFromURIs(opts.Artifacts),
		caseInsensitive: opts.CaseInsensitive,
		oracle:          opts.Oracle,
		prompter:        opts.Prompter,
		logger:          logger.With("session", uuid.NewString()),
	}
}

// URIBases returns a copy of the current override base list.
func (r *Rebaser) URIBases() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.bases...)
}

// SetURIBases replaces the override base list wholesale. Previously resolved
// mappings stay cached for the session; only subsequent cache-miss
// resolutions see the new bases.
func (r *Rebaser) SetURIBases(bases []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bases = append([]string(nil), bases...)
}

// SetWorkspaceFiles replaces the workspace file snapshot, e.g. after the
// consumer re-enumerated the workspace. Caches are unaffected.
func (r *Rebaser) SetWorkspaceFiles(files []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.workspace = append([]string(nil), files...)
}

// ToLocal translates an artifact URI into a local URI, prompting the user to
// locate the file when no automatic candidate can be confirmed. A cached
// resolution (including a tombstone from an earlier decline) is returned
// without touching disk or prompting again. An empty string means the file
// could not be located; an error is returned only for a malformed URI.
func (r *Rebaser) ToLocal(ctx context.Context, artifactURI string) (string, error) {
	return r.resolveLocal(ctx, artifactURI, true)
}

// PeekLocal is the silent variant of ToLocal used while the user is merely
// navigating: it runs the same automatic matching but never prompts and never
// records a tombstone, so a later interactive translation of the same
// artifact can still ask the user.
func (r *Rebaser) PeekLocal(ctx context.Context, artifactURI string) (string, error) {
	return r.resolveLocal(ctx, artifactURI, false)
}

func (r *Rebaser) resolveLocal(ctx context.Context, artifactURI string, interactive bool) (string, error) {
	r.mu.Lock()
	if local, ok := r.localByArtifact[artifactURI]; ok {
		r.mu.Unlock()
		return local, nil
	}
	r.mu.Unlock()

	// Resolutions not yet started must not begin once the caller's batch has
	// been cancelled; an in-flight one completes normally below.
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// Concurrent requests for the same artifact share one resolution so the
	// user is never shown a duplicate prompt.
	v, err, _ := r.flight.Do(artifactURI, func() (interface{}, error) {
		r.mu.Lock()
		if local, ok := r.localByArtifact[artifactURI]; ok {
			r.mu.Unlock()
			return local, nil
		}
		bases := append([]string(nil), r.bases...)
		workspace := r.workspace
		r.mu.Unlock()

		local, declined, err := r.resolveLocalUncached(ctx, artifactURI, bases, workspace, interactive)
		if err != nil {
			return "", err
		}

		r.mu.Lock()
		if local != "" {
			r.localByArtifact[artifactURI] = local
			r.artifactByLocal[local] = artifactURI
		} else if declined {
			r.localByArtifact[artifactURI] = ""
		}
		r.mu.Unlock()
		return local, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// resolveLocalUncached runs the automatic matching pipeline and, when allowed,
// the interactive fallback. It reports declined=true only when the user was
// actually asked and skipped or dismissed, which is the sole condition that
// creates a tombstone.
func (r *Rebaser) resolveLocalUncached(ctx context.Context, artifactURI string, bases, workspace []string, interactive bool) (local string, declined bool, err error) {
	u, parseErr := url.Parse(artifactURI)
	if parseErr != nil {
		return "", false, NewMalformedURIError(artifactURI, parseErr)
	}
	path := u.Path
	if path == "" {
		path = u.Opaque
	}
	segs := pathutil.SplitSegments(path)
	if len(segs) == 0 {
		return "", false, NewMalformedURIError(artifactURI, nil)
	}

	// A file URI that still exists as recorded needs no rebasing.
	if u.Scheme == "file" && r.exists(ctx, artifactURI) {
		r.logger.Debug("artifact exists as recorded", "artifact", artifactURI)
		return artifactURI, false, nil
	}

	// Override-base matching: align a suffix of each base with the artifact
	// path at every shared segment and substitute the base's root for the
	// artifact's differing prefix. Bases are tried in the order the consumer
	// supplied them; the first existence-confirmed candidate wins.
	for _, base := range bases {
		bsegs, ok := pathutil.URIPathSegments(base)
		if !ok {
			continue
		}
		for _, pair := range pathutil.CommonIndices(bsegs, segs) {
			candidate := fileURIFromSegments(joinSegments(bsegs[:pair[0]+1], segs[pair[1]+1:]))
			if r.exists(ctx, candidate) {
				r.logger.Debug("override base matched", "artifact", artifactURI, "base", base, "local", candidate)
				return candidate, false, nil
			}
		}
		// Relative artifact paths may simply live under the base.
		candidate := fileURIFromSegments(joinSegments(bsegs, segs))
		if r.exists(ctx, candidate) {
			r.logger.Debug("override base matched", "artifact", artifactURI, "base", base, "local", candidate)
			return candidate, false, nil
		}
	}

	// Workspace suffix matching: the file sharing the longest trailing
	// segment run wins, with a minimum of the base name itself. An exact
	// full-path match short-circuits; ties keep the first file in
	// enumeration order so resolution stays stable across runs.
	bestIdx, bestLen := -1, 0
	for idx, file := range workspace {
		fsegs, ok := pathutil.URIPathSegments(file)
		if !ok {
			continue
		}
		if pathutil.EqualSegments(segs, fsegs, r.caseInsensitive) {
			bestIdx, bestLen = idx, len(segs)
			break
		}
		if n := pathutil.CommonSuffixLength(segs, fsegs, r.caseInsensitive); n > bestLen {
			bestIdx, bestLen = idx, n
		}
	}
	seedDir := firstOrEmpty(bases)
	if bestIdx >= 0 && bestLen >= 1 {
		candidate := workspace[bestIdx]
		if r.exists(ctx, candidate) {
			r.logger.Debug("workspace suffix matched", "artifact", artifactURI, "local", candidate, "suffix_len", bestLen)
			return candidate, false, nil
		}
		seedDir = parentURI(candidate)
	}

	if !interactive || r.prompter == nil {
		return "", false, nil
	}

	choice, promptErr := r.prompter.AskLocateOrSkip(ctx, artifactURI)
	if promptErr != nil {
		// A failing prompt is not a decline; leave the entry uncached so a
		// later call can ask again.
		r.logger.Warn("locate-or-skip prompt failed", "artifact", artifactURI, "error", promptErr)
		return "", false, nil
	}
	if choice != ChoiceLocate {
		r.logger.Debug("user skipped artifact", "artifact", artifactURI)
		return "", true, nil
	}

	picked, pickErr := r.prompter.PickFile(ctx, seedDir)
	if pickErr != nil {
		r.logger.Warn("file picker failed", "artifact", artifactURI, "error", pickErr)
		return "", false, nil
	}
	if picked != "" && r.exists(ctx, picked) {
		r.logger.Info("user located artifact", "artifact", artifactURI, "local", picked)
		return picked, false, nil
	}
	return "", true, nil
}

// ToArtifact translates a local URI back to the artifact URI of a loaded
// result, so diagnostics can be attached to the file the user is editing.
// This direction never prompts: a miss silently returns an empty string.
func (r *Rebaser) ToArtifact(ctx context.Context, localURI string) (string, error) {
	r.mu.Lock()
	if artifact, ok := r.artifactByLocal[localURI]; ok {
		r.mu.Unlock()
		return artifact, nil
	}
	bases := append([]string(nil), r.bases...)
	r.mu.Unlock()

	u, parseErr := url.Parse(localURI)
	if parseErr != nil {
		return "", NewMalformedURIError(localURI, parseErr)
	}
	path := u.Path
	if path == "" {
		path = u.Opaque
	}
	lsegs := pathutil.SplitSegments(path)
	if len(lsegs) == 0 {
		return "", NewMalformedURIError(localURI, nil)
	}

	artifact := r.matchArtifact(lsegs, bases)
	if artifact == "" {
		return "", nil
	}
	r.mu.Lock()
	r.artifactByLocal[localURI] = artifact
	r.mu.Unlock()
	r.logger.Debug("matched local file to artifact", "local", localURI, "artifact", artifact)
	return artifact, nil
}

// matchArtifact mirrors the automatic artifact->local steps with the roles of
// the two sides swapped.
func (r *Rebaser) matchArtifact(lsegs []string, bases []string) string {
	// Override-base inverse: when the local path lives under a base, its
	// remainder must appear as a trailing run of some artifact's path.
	for _, base := range bases {
		bsegs, ok := pathutil.URIPathSegments(base)
		if !ok || len(bsegs) > len(lsegs) {
			continue
		}
		if !pathutil.EqualSegments(bsegs, lsegs[:len(bsegs)], r.caseInsensitive) {
			continue
		}
		rel := lsegs[len(bsegs):]
		if len(rel) == 0 {
			continue
		}
		for _, artifact := range r.artifacts {
			asegs, ok := pathutil.URIPathSegments(artifact)
			if !ok {
				continue
			}
			if pathutil.CommonSuffixLength(asegs, rel, r.caseInsensitive) == len(rel) {
				return artifact
			}
		}
	}

	// Suffix scan over the log's artifact set; the distinct name index is
	// consulted as a hint and accepted when nothing aligns more closely.
	bestIdx, bestLen := -1, 0
	for idx, artifact := range r.artifacts {
		asegs, ok := pathutil.URIPathSegments(artifact)
		if !ok {
			continue
		}
		if pathutil.EqualSegments(asegs, lsegs, r.caseInsensitive) {
			bestIdx, bestLen = idx, len(lsegs)
			break
		}
		if n := pathutil.CommonSuffixLength(asegs, lsegs, r.caseInsensitive); n > bestLen {
			bestIdx, bestLen = idx, n
		}
	}
	if hint := r.distinctLookup(lsegs[len(lsegs)-1]); hint != "" {
		hsegs, ok := pathutil.URIPathSegments(hint)
		if ok {
			if n := pathutil.CommonSuffixLength(hsegs, lsegs, r.caseInsensitive); n >= 1 && n >= bestLen {
				return hint
			}
		}
	}
	if bestIdx >= 0 && bestLen >= 1 {
		return r.artifacts[bestIdx]
	}
	return ""
}

func (r *Rebaser) distinctLookup(baseName string) string {
	if uri, ok := r.distinct[baseName]; ok {
		return uri
	}
	if r.caseInsensitive {
		for name, uri := range r.distinct {
			if strings.EqualFold(name, baseName) {
				return uri
			}
		}
	}
	return ""
}

func (r *Rebaser) exists(ctx context.Context, uri string) bool {
	if r.oracle == nil {
		return false
	}
	ok, err := r.oracle.Exists(ctx, uri)
	if err != nil {
		r.logger.Debug("existence check failed", "uri", uri, "error", err)
		return false
	}
	return ok
}

func joinSegments(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func fileURIFromSegments(segs []string) string {
	return "file:///" + strings.Join(segs, "/")
}

func parentURI(uri string) string {
	if idx := strings.LastIndex(uri, "/"); idx > 0 {
		return uri[:idx]
	}
	return uri
}

func firstOrEmpty(values []string) string {
	if len(values) > 0 {
		return values[0]
	}
	return ""
}
