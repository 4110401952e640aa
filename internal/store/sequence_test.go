package store

import (
	"sync"
	"testing"
)

func TestSequenceStartsAfterFloor(t *testing.T) {
	s := NewSequence(10)
	if got := s.Next(); got != 11 {
		t.Fatalf("expected 11, got %d", got)
	}
	if got := s.Last(); got != 11 {
		t.Fatalf("expected last 11, got %d", got)
	}
}

func TestSequenceConcurrentUnique(t *testing.T) {
	s := NewSequence(0)
	var (
		mu   sync.Mutex
		seen = make(map[int64]struct{})
		wg   sync.WaitGroup
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v := s.Next()
			mu.Lock()
			seen[v] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()
	if len(seen) != 50 {
		t.Fatalf("expected 50 unique values, got %d", len(seen))
	}
	if s.Last() != 50 {
		t.Fatalf("expected last 50, got %d", s.Last())
	}
}
