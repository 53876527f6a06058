package store

import (
	"testing"
)

func TestParseStorePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    StorePath
		wantErr bool
	}{
		{"bare path", "0123456789abcdef-hello", "0123456789abcdef-hello", false},
		{"absolute path", "/var/lib/cellar/store/0123456789abcdef-hello", "0123456789abcdef-hello", false},
		{"versioned name", "0123456789abcdef-hello-2.12.1", "0123456789abcdef-hello-2.12.1", false},
		{"short digest", "0123-hello", "", true},
		{"uppercase digest", "0123456789ABCDEF-hello", "", true},
		{"no name", "0123456789abcdef-", "", true},
		{"no digest", "hello", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStorePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStorePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseStorePath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStorePath_Parts(t *testing.T) {
	p := StorePath("0123456789abcdef-hello-2.12.1")

	if p.Digest() != "0123456789abcdef" {
		t.Errorf("Digest() = %q", p.Digest())
	}
	if p.Name() != "hello-2.12.1" {
		t.Errorf("Name() = %q", p.Name())
	}
}

func TestClosure_Chain(t *testing.T) {
	m := NewMockStore()
	a := StorePath("aaaaaaaaaaaaaaaa-a")
	b := StorePath("bbbbbbbbbbbbbbbb-b")
	c := StorePath("cccccccccccccccc-c")
	m.AddObject(c)
	m.AddObject(b, c)
	m.AddObject(a, b)

	got, err := m.ComputeClosure([]StorePath{a})
	if err != nil {
		t.Fatalf("ComputeClosure failed: %v", err)
	}

	want := []StorePath{a, b, c}
	if len(got) != len(want) {
		t.Fatalf("closure = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("closure[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestClosure_NoReferences(t *testing.T) {
	m := NewMockStore()
	a := StorePath("aaaaaaaaaaaaaaaa-a")
	m.AddObject(a)

	got, err := m.ComputeClosure([]StorePath{a})
	if err != nil {
		t.Fatalf("ComputeClosure failed: %v", err)
	}
	if len(got) != 1 || got[0] != a {
		t.Errorf("closure = %v, want [%s]", got, a)
	}
}

func TestClosure_DuplicateAndCyclicEdges(t *testing.T) {
	m := NewMockStore()
	a := StorePath("aaaaaaaaaaaaaaaa-a")
	b := StorePath("bbbbbbbbbbbbbbbb-b")
	// Duplicate edges a->b and a cycle b->a. The store graph is acyclic
	// by construction, but the traversal must not rely on that.
	m.AddObject(a, b, b)
	m.Objects[b] = &ObjectInfo{Path: b, References: []StorePath{a, a}}

	got, err := m.ComputeClosure([]StorePath{a})
	if err != nil {
		t.Fatalf("ComputeClosure failed: %v", err)
	}

	seen := make(map[StorePath]int)
	for _, p := range got {
		seen[p]++
	}
	if len(got) != 2 || seen[a] != 1 || seen[b] != 1 {
		t.Errorf("closure = %v, want exactly {a, b} once each", got)
	}
}

func TestClosure_DuplicateRoots(t *testing.T) {
	m := NewMockStore()
	a := StorePath("aaaaaaaaaaaaaaaa-a")
	m.AddObject(a)

	got, err := m.ComputeClosure([]StorePath{a, a, a})
	if err != nil {
		t.Fatalf("ComputeClosure failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("closure = %v, want a single entry", got)
	}
}

func TestMockStore_QueryByName(t *testing.T) {
	m := NewMockStore()
	m.AddObject("aaaaaaaaaaaaaaaa-hello")
	m.AddObject("bbbbbbbbbbbbbbbb-hello")
	m.AddObject("cccccccccccccccc-other")

	got, err := m.QueryByName("hello")
	if err != nil {
		t.Fatalf("QueryByName failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("QueryByName returned %d paths, want 2", len(got))
	}
	// Sorted order.
	if got[0] != "aaaaaaaaaaaaaaaa-hello" || got[1] != "bbbbbbbbbbbbbbbb-hello" {
		t.Errorf("QueryByName = %v", got)
	}
}

func TestMockStore_ErrorInjection(t *testing.T) {
	m := NewMockStore()
	m.SetError("QueryAllValidPaths", errTest)

	if _, err := m.QueryAllValidPaths(); err != errTest {
		t.Errorf("expected injected error, got %v", err)
	}
}

var errTest = &testError{}

type testError struct{}

func (*testError) Error() string { return "injected" }
