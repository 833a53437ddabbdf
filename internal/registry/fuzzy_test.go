package registry

import "testing"

func TestFuzzyMatchBasics(t *testing.T) {
	cases := []struct {
		target string
		query  string
		expect bool
	}{
		{"alpha", "al", true},
		{"alpha", "ah", true},
		{"alpha", "ph", true},
		{"alpha", "xa", false},
		{"Hello World", "helloworld", true},
		{"Hello World", "hwd", true},
		{"Hello", "", true},
	}
	for _, c := range cases {
		got := FuzzyMatch(c.target, c.query)
		if got != c.expect {
			t.Fatalf("FuzzyMatch(%q, %q) = %v, want %v", c.target, c.query, got, c.expect)
		}
	}
}

func TestSearchMatchesNamesAndPaths(t *testing.T) {
	r, _, _ := setupRegistry(t, "morning", "evening")
	if _, err := r.Save(ctx, "tools", items("/opt/editor/bin/code"), false, nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got := r.Search("editor")
	if len(got) != 1 || got[0].Record.Name != "tools" || got[0].Index != 2 {
		t.Fatalf("unexpected search result %+v", got)
	}
	if got := r.Search("ning"); len(got) != 2 {
		t.Fatalf("expected two matches, got %d", len(got))
	}
}
