package rebase

import "github.com/sariflens/sariflens/pkg/pathutil"

// NamePair associates a file's base name with the full artifact URI that uses
// it, as discovered while walking a loaded log.
type NamePair struct {
	Name string
	URI  string
}

// BuildDistinctIndex builds a base-name -> artifact-URI map from the given
// pairs. A name seen with two different full URIs is ambiguous and excluded
// from the result entirely; a name repeated with the same URI collapses to a
// single entry. The index is a first-pass hint only: a hit still needs
// existence or suffix confirmation before it counts as a resolution.
func BuildDistinctIndex(pairs []NamePair) map[string]string {
	index := make(map[string]string)
	ambiguous := make(map[string]struct{})

	for _, p := range pairs {
		if p.Name == "" || p.URI == "" {
			continue
		}
		if _, bad := ambiguous[p.Name]; bad {
			continue
		}
		if existing, ok := index[p.Name]; ok {
			if existing != p.URI {
				delete(index, p.Name)
				ambiguous[p.Name] = struct{}{}
			}
			continue
		}
		index[p.Name] = p.URI
	}
	return index
}

// DistinctIndexFromURIs derives name pairs from raw artifact URIs and builds
// the distinct index over them. URIs whose path cannot be parsed are skipped;
// they will still fail loudly later when a translation is attempted.
func DistinctIndexFromURIs(uris []string) map[string]string {
	pairs := make([]NamePair, 0, len(uris))
	for _, uri := range uris {
		segs, ok := pathutil.URIPathSegments(uri)
		if !ok {
			continue
		}
		pairs = append(pairs, NamePair{Name: segs[len(segs)-1], URI: uri})
	}
	return BuildDistinctIndex(pairs)
}
