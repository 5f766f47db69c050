package util

import (
	"testing"
)

func TestLimiterAllow(t *testing.T) {
	t.Parallel()

	l := NewLimiter(1, 2)

	if !l.Allow(1) {
		t.Fatal("first event should be allowed")
	}
	if !l.Allow(1) {
		t.Fatal("burst should allow a second event")
	}
	if l.Allow(1) {
		t.Fatal("third immediate event should be throttled")
	}
}
