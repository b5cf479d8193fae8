package redis

import (
	"testing"
)

func TestULIDGeneratorProducesUniqueIDs(t *testing.T) {
	g := NewULIDGenerator()

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := g.Generate()
		if len(id) != 26 {
			t.Fatalf("expected 26-character ULID, got %q", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate ID generated: %s", id)
		}
		seen[id] = struct{}{}
	}
}
