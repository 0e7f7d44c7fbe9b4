package goid

import (
	"sync"
	"testing"

	"golang.org/x/sync/errgroup"
)

func TestCurrentIsStable(t *testing.T) {
	a := Current()
	b := Current()
	if a == 0 {
		t.Fatalf("Current() = 0, want a parsed goroutine id")
	}
	if a != b {
		t.Fatalf("Current() changed within one goroutine: %d then %d", a, b)
	}

	var other uint64
	done := make(chan struct{})
	go func() {
		other = Current()
		close(done)
	}()
	<-done
	if other == a {
		t.Fatalf("two goroutines share id %d", a)
	}
}

func TestLabelerOrderOfFirstCall(t *testing.T) {
	var l Labeler
	ask := func() int {
		ch := make(chan int)
		go func() { ch <- l.ShortID() }()
		return <-ch
	}

	// Goroutine A, then B, then A again.
	a := make(chan struct{})
	resA := make(chan int, 2)
	go func() {
		resA <- l.ShortID()
		<-a
		resA <- l.ShortID()
	}()
	first := <-resA
	second := ask()
	close(a)
	third := <-resA

	if got := []int{first, second, third}; got[0] != 0 || got[1] != 1 || got[2] != 0 {
		t.Fatalf("short ids = %v, want [0 1 0]", got)
	}
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}
}

func TestLabelerConcurrentDense(t *testing.T) {
	const n = 64
	l := NewLabeler()

	var (
		mu   sync.Mutex
		seen = make(map[int]int)
	)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			id := l.ShortID()
			for j := 0; j < 10; j++ {
				if again := l.ShortID(); again != id {
					t.Errorf("ShortID changed for one goroutine: %d then %d", id, again)
				}
			}
			mu.Lock()
			seen[id]++
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(seen) != n {
		t.Fatalf("got %d distinct ids, want %d", len(seen), n)
	}
	for id, count := range seen {
		if id < 0 || id >= n {
			t.Errorf("id %d outside [0, %d)", id, n)
		}
		if count != 1 {
			t.Errorf("id %d handed to %d goroutines", id, count)
		}
	}
}

func TestLabelerLookup(t *testing.T) {
	l := NewLabeler()
	if _, ok := l.Lookup(Current()); ok {
		t.Fatalf("Lookup before ShortID should miss")
	}
	id := l.ShortID()
	got, ok := l.Lookup(Current())
	if !ok || got != id {
		t.Fatalf("Lookup = (%d, %v), want (%d, true)", got, ok, id)
	}
}
