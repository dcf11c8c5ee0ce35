package idgen

import (
	"sync"
	"testing"
)

func TestSequence(t *testing.T) {
	s := NewSequence(1)
	for i, want := range []string{"1", "2", "3"} {
		if got := s.Next(); got != want {
			t.Fatalf("Next() #%d = %q, want %q", i, got, want)
		}
	}
}

func TestSequenceStart(t *testing.T) {
	s := NewSequence(100)
	if got := s.Next(); got != "100" {
		t.Fatalf("Next() = %q, want 100", got)
	}
}

func TestSequenceConcurrent(t *testing.T) {
	s := NewSequence(1)
	const n = 200
	ids := make(chan string, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- s.Next()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool, n)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Fatalf("got %d unique ids, want %d", len(seen), n)
	}
}

func TestUUIDUnique(t *testing.T) {
	g := UUID{}
	a, b := g.Next(), g.Next()
	if a == b {
		t.Fatalf("consecutive UUIDs collide: %q", a)
	}
	if len(a) != 36 {
		t.Fatalf("unexpected UUID length %d: %q", len(a), a)
	}
}
