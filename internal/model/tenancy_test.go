package model

import (
	"strings"
	"testing"
)

func TestGeneratePublicID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := GeneratePublicID("org")
		if !strings.HasPrefix(id, "org-") {
			t.Fatalf("id %q missing prefix", id)
		}
		random := strings.TrimPrefix(id, "org-")
		if len(random) != 16 {
			t.Fatalf("random part of %q has length %d, want 16", id, len(random))
		}
		for _, c := range random {
			if !strings.ContainsRune(publicIDAlphabet, c) {
				t.Fatalf("id %q contains %q outside the alphabet", id, c)
			}
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
