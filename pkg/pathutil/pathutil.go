package pathutil

import (
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
)

// SplitSegments splits a path-like string into its segments in root-to-leaf
// order. Both forward and backward slashes act as separators, trailing
// separators are stripped, "." segments are dropped and ".." segments are
// resolved against a preceding normal segment when that is unambiguous.
// Leading ".." segments that cannot be resolved are preserved.
func SplitSegments(path string) []string {
	normalized := strings.ReplaceAll(path, "\\", "/")
	normalized = strings.TrimRight(normalized, "/")

	var segments []string
	for _, seg := range strings.Split(normalized, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if n := len(segments); n > 0 && segments[n-1] != ".." {
				segments = segments[:n-1]
				continue
			}
			segments = append(segments, seg)
		default:
			segments = append(segments, seg)
		}
	}
	return segments
}

// CommonSuffixLength returns the number of trailing segments shared by a and b,
// comparing from the leaf end. Comparison is case-insensitive when
// caseInsensitive is set; the policy is passed in rather than derived here so
// callers (and tests) control it explicitly.
func CommonSuffixLength(a, b []string, caseInsensitive bool) int {
	n := 0
	for n < len(a) && n < len(b) {
		if !segmentsEqual(a[len(a)-1-n], b[len(b)-1-n], caseInsensitive) {
			break
		}
		n++
	}
	return n
}

// CommonIndices returns every (indexInA, indexInB) pair where a[i] equals b[j],
// scanning a forward and, for each element, matching all of its occurrences in
// b in order. Matching is exact; callers that need a case policy should
// pre-fold the inputs. The pairs identify candidate split points for suffix
// alignment when two paths share a middle segment but diverge at the root.
func CommonIndices(a, b []string) [][2]int {
	var pairs [][2]int
	for i, sa := range a {
		for j, sb := range b {
			if sa == sb {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}

// EqualSegments reports whether a and b contain the same segments in the same
// order under the given case policy.
func EqualSegments(a, b []string, caseInsensitive bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !segmentsEqual(a[i], b[i], caseInsensitive) {
			return false
		}
	}
	return true
}

func segmentsEqual(a, b string, caseInsensitive bool) bool {
	if caseInsensitive {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// CaseInsensitivePlatform reports whether path comparison on the current OS
// defaults to case-insensitive. Windows and macOS filesystems are
// case-insensitive by default, Linux is not.
func CaseInsensitivePlatform() bool {
	return runtime.GOOS == "windows" || runtime.GOOS == "darwin"
}

// FileURI converts a local filesystem path to a file:// URI string with
// forward slashes. Relative paths are kept relative.
func FileURI(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		// Windows drive paths need a leading slash in the URI form.
		if len(p) >= 2 && p[1] == ':' {
			p = "/" + p
		} else {
			return "file://" + p
		}
	}
	return "file://" + p
}

// FilePath converts a file:// URI string back to a local filesystem path.
// Returns an error when the URI cannot be parsed; non-file schemes are
// returned as their path component since they have no local representation
// beyond it.
func FilePath(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	p := u.Path
	if p == "" {
		p = u.Opaque
	}
	// Strip the synthetic leading slash in front of Windows drive letters.
	if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	return filepath.FromSlash(p), nil
}

// URIPathSegments parses a URI string and returns its path segments. The
// second return value is false when the URI cannot be parsed or contains no
// path at all.
func URIPathSegments(uri string) ([]string, bool) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, false
	}
	p := u.Path
	if p == "" {
		p = u.Opaque
	}
	segs := SplitSegments(p)
	if len(segs) == 0 {
		return nil, false
	}
	return segs, true
}
