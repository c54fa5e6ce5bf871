package pattern

import (
	"reflect"
	"testing"
)

func texts(ms []Match) []string {
	var out []string
	for _, m := range ms {
		out = append(out, m.Text)
	}
	return out
}

func TestNewTagValidation(t *testing.T) {
	if _, err := NewTag("project", true); err == nil {
		t.Error("expected error for tag without marker")
	}
	if _, err := NewTag("#", true); err == nil {
		t.Error("expected error for bare marker")
	}
}

func TestTagExactMode(t *testing.T) {
	p, err := NewTag("#project", true)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"bare tag", "see #project here", []string{"#project"}},
		{"nested tag excluded", "#project/alpha and #project", []string{"#project"}},
		{"longer tag excluded", "#project2 is different", nil},
		{"word prefix excluded", "ab#project", nil},
		{"start of text", "#project", []string{"#project"}},
		{"trailing punctuation ok", "done with #project.", []string{"#project"}},
		{"two occurrences", "#project and #project", []string{"#project", "#project"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := texts(p.FindAll(tt.in))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindAll(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTagHierarchicalMode(t *testing.T) {
	p, err := NewTag("#project", false)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		in   string
		want []string
	}{
		{"#project/alpha and #project", []string{"#project/alpha", "#project"}},
		{"#project/alpha/beta", []string{"#project/alpha/beta"}},
		{"#project2", nil},
		{"#project/alpha2", []string{"#project/alpha2"}},
	}

	for _, tt := range tests {
		got := texts(p.FindAll(tt.in))
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("FindAll(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAnyTag(t *testing.T) {
	p := NewAnyTag()
	got := texts(p.FindAll("#alpha text #beta/gamma not#this"))
	want := []string{"#alpha", "#beta/gamma"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindAll = %v, want %v", got, want)
	}
}

func TestPathedWikilink(t *testing.T) {
	p := NewPathedWikilink()

	tests := []struct {
		name       string
		in         string
		wantGroups [][]string
	}{
		{
			name:       "path with alias",
			in:         "[[00 - Archive/People/Jane Doe|Jane]]",
			wantGroups: [][]string{{"00 - Archive/People/", "Jane Doe", "Jane"}},
		},
		{
			name:       "deep path no alias",
			in:         "see [[a/b/c/Takeaway]] here",
			wantGroups: [][]string{{"a/b/c/", "Takeaway", ""}},
		},
		{
			name: "simple link is not pathed",
			in:   "[[Jane Doe]] and [[Jane|J]]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := p.FindAll(tt.in)
			if len(ms) != len(tt.wantGroups) {
				t.Fatalf("got %d matches, want %d", len(ms), len(tt.wantGroups))
			}
			for i, m := range ms {
				if !reflect.DeepEqual(m.Groups, tt.wantGroups[i]) {
					t.Errorf("Groups = %v, want %v", m.Groups, tt.wantGroups[i])
				}
			}
		})
	}
}

func TestNavRow(t *testing.T) {
	p := NewNavRow()

	in := "←← [[2025-W12 |THIS WEEK / [[2025-03-20 |-1D / [[2025-03-22 |+1D / [[2025-W13 →→"
	ms := p.FindAll(in)
	if len(ms) != 1 {
		t.Fatalf("got %d matches, want 1", len(ms))
	}
	m := ms[0]
	if len(m.Groups) != 8 {
		t.Fatalf("got %d groups, want 8", len(m.Groups))
	}
	wantTargets := []string{"2025-W12 ", "2025-03-20 ", "2025-03-22 ", "2025-W13 "}
	for i, want := range wantTargets {
		if m.Groups[i*2] != want {
			t.Errorf("target %d = %q, want %q", i, m.Groups[i*2], want)
		}
	}
	if m.Groups[1] != "THIS WEEK " {
		t.Errorf("first alias = %q, want %q", m.Groups[1], "THIS WEEK ")
	}

	// A partial row must never match.
	partial := "←← [[2025-W12 / [[2025-03-20 →→"
	if got := p.FindAll(partial); got != nil {
		t.Errorf("partial row matched: %v", got)
	}
}

func TestDoneTag(t *testing.T) {
	p := NewDoneTag()

	tests := []struct {
		in   string
		want []string
	}{
		{"task #done(2021-11-23 19:20) end", []string{"#done(2021-11-23 19:20)"}},
		{"task #done end", []string{"#done"}},
		{"both #done(x) and #done", []string{"#done(x)", "#done"}},
		{"#doneness", nil},
		{"well#done", nil},
	}

	for _, tt := range tests {
		got := texts(p.FindAll(tt.in))
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("FindAll(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMatchesDisjointAndOrdered(t *testing.T) {
	p := NewAnyTag()
	in := "#a #b #c #a/b #x text #y"
	ms := p.FindAll(in)
	if len(ms) < 2 {
		t.Fatalf("expected multiple matches, got %d", len(ms))
	}
	for i := 1; i < len(ms); i++ {
		if ms[i].Start < ms[i-1].End {
			t.Errorf("match %d overlaps previous: %+v / %+v", i, ms[i-1], ms[i])
		}
		if ms[i].Start <= ms[i-1].Start {
			t.Errorf("match %d not strictly increasing", i)
		}
	}
}
