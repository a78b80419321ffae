package sariflog

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/owenrumney/go-sarif/v2/sarif"
)

// Log wraps a parsed SARIF report and exposes the artifact URIs and result
// locations the rebasing engine consumes. uriBaseId placeholders are resolved
// against the run's originalUriBaseIds while extracting, so downstream code
// only ever sees fully-assembled URIs (or the raw relative path when the log
// never declares the base).
type Log struct {
	report *sarif.Report
	path   string
	logger hclog.Logger
}

// Location is one result location, flattened to what resolution and display
// need.
type Location struct {
	ArtifactURI string
	RuleID      string
	Message     string
	StartLine   int
	EndLine     int
}

// Load reads and parses the SARIF log at the given path.
func Load(path string, logger hclog.Logger) (*Log, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	report, err := sarif.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read SARIF log %q: %w", path, err)
	}
	return &Log{report: report, path: path, logger: logger}, nil
}

// Path returns the filesystem path the log was loaded from.
func (l *Log) Path() string {
	return l.path
}

// ArtifactURIs returns every distinct artifact URI referenced by the log's
// run artifacts and result locations, in first-seen order.
func (l *Log) ArtifactURIs() []string {
	var uris []string
	seen := make(map[string]struct{})
	add := func(uri string) {
		if uri == "" {
			return
		}
		if _, ok := seen[uri]; ok {
			return
		}
		seen[uri] = struct{}{}
		uris = append(uris, uri)
	}

	for _, run := range l.report.Runs {
		for _, artifact := range run.Artifacts {
			add(resolveArtifactURI(run, artifact.Location))
		}
		for _, result := range run.Results {
			for _, loc := range result.Locations {
				if loc.PhysicalLocation == nil {
					continue
				}
				add(resolveArtifactURI(run, loc.PhysicalLocation.ArtifactLocation))
			}
		}
	}
	return uris
}

// Locations returns the first physical location of every result in the log,
// with its uriBaseId already resolved. Results without a usable location are
// skipped with a debug log line rather than dropped silently.
func (l *Log) Locations() []Location {
	var locations []Location
	for _, run := range l.report.Runs {
		for _, result := range run.Results {
			loc := firstPhysicalLocation(result)
			if loc == nil {
				l.logger.Debug("result has no physical location", "rule", ruleID(result))
				continue
			}
			uri := resolveArtifactURI(run, loc.ArtifactLocation)
			if uri == "" {
				l.logger.Debug("result location has no artifact URI", "rule", ruleID(result))
				continue
			}
			start, end := region(loc)
			locations = append(locations, Location{
				ArtifactURI: uri,
				RuleID:      ruleID(result),
				Message:     messageText(result),
				StartLine:   start,
				EndLine:     end,
			})
		}
	}
	return locations
}

// resolveArtifactURI assembles the full URI for an artifact location,
// following uriBaseId references through originalUriBaseIds. Base entries may
// themselves be relative to another base, so the chain is walked with a depth
// guard against malformed self-referencing logs.
func resolveArtifactURI(run *sarif.Run, art *sarif.ArtifactLocation) string {
	if art == nil {
		return ""
	}
	if art.URI == nil && art.Index != nil {
		idx := int(*art.Index)
		if idx >= 0 && idx < len(run.Artifacts) {
			art = run.Artifacts[idx].Location
			if art == nil {
				return ""
			}
		}
	}
	if art.URI == nil {
		return ""
	}

	uri := *art.URI
	baseID := art.URIBaseId
	for depth := 0; baseID != nil && depth < 10; depth++ {
		base, ok := run.OriginalUriBaseIDs[*baseID]
		if !ok || base == nil || base.URI == nil {
			break
		}
		uri = joinURI(*base.URI, uri)
		baseID = base.URIBaseId
	}
	return uri
}

func joinURI(base, rel string) string {
	if base == "" {
		return rel
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(rel, "/")
}

func firstPhysicalLocation(result *sarif.Result) *sarif.PhysicalLocation {
	if result == nil || len(result.Locations) == 0 {
		return nil
	}
	return result.Locations[0].PhysicalLocation
}

func region(loc *sarif.PhysicalLocation) (int, int) {
	if loc.Region == nil {
		return 0, 0
	}
	start, end := 0, 0
	if loc.Region.StartLine != nil {
		start = *loc.Region.StartLine
	}
	if loc.Region.EndLine != nil {
		end = *loc.Region.EndLine
	}
	if end == 0 {
		end = start
	}
	return start, end
}

func ruleID(result *sarif.Result) string {
	if result == nil || result.RuleID == nil {
		return ""
	}
	return *result.RuleID
}

func messageText(result *sarif.Result) string {
	if result == nil || result.Message.Text == nil {
		return ""
	}
	return *result.Message.Text
}
