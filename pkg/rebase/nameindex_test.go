package rebase

import "testing"

func TestBuildDistinctIndex(t *testing.T) {
	tests := []struct {
		name     string
		pairs    []NamePair
		expected map[string]string
	}{
		{
			name: "unique names kept",
			pairs: []NamePair{
				{Name: "foo.c", URI: "file:///a/foo.c"},
				{Name: "bar.c", URI: "file:///a/bar.c"},
			},
			expected: map[string]string{
				"foo.c": "file:///a/foo.c",
				"bar.c": "file:///a/bar.c",
			},
		},
		{
			name: "ambiguous name excluded entirely",
			pairs: []NamePair{
				{Name: "foo.c", URI: "file:///a/foo.c"},
				{Name: "foo.c", URI: "file:///b/foo.c"},
			},
			expected: map[string]string{},
		},
		{
			name: "repeated identical pair collapses",
			pairs: []NamePair{
				{Name: "foo.c", URI: "file:///a/foo.c"},
				{Name: "foo.c", URI: "file:///a/foo.c"},
			},
			expected: map[string]string{"foo.c": "file:///a/foo.c"},
		},
		{
			name: "ambiguous name stays excluded after later repeat",
			pairs: []NamePair{
				{Name: "foo.c", URI: "file:///a/foo.c"},
				{Name: "foo.c", URI: "file:///b/foo.c"},
				{Name: "foo.c", URI: "file:///a/foo.c"},
			},
			expected: map[string]string{},
		},
		{
			name: "empty fields skipped",
			pairs: []NamePair{
				{Name: "", URI: "file:///a/foo.c"},
				{Name: "foo.c", URI: ""},
			},
			expected: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildDistinctIndex(tt.pairs)
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %d entries, got %d (%v)", len(tt.expected), len(got), got)
			}
			for name, uri := range tt.expected {
				if got[name] != uri {
					t.Errorf("index[%q] = %q, expected %q", name, got[name], uri)
				}
			}
		})
	}
}

func TestDistinctIndexFromURIs(t *testing.T) {
	index := DistinctIndexFromURIs([]string{
		"file:///a/foo.c",
		"file:///b/sub/bar.c",
		"http:///ci/work/bar.c", // same base name, different URI: ambiguous
	})

	if _, ok := index["bar.c"]; ok {
		t.Errorf("expected bar.c to be excluded as ambiguous, got %q", index["bar.c"])
	}
	if index["foo.c"] != "file:///a/foo.c" {
		t.Errorf("index[foo.c] = %q, expected file:///a/foo.c", index["foo.c"])
	}
}
