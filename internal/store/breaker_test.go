package store

import (
	"errors"
	"testing"
)

// flakyGateway embeds the memory store and fails GetUser on demand.
type flakyGateway struct {
	*MemoryStore
	failing bool
}

var errConnRefused = errors.New("connection refused")

func (f *flakyGateway) GetUser(id int) (User, error) {
	if f.failing {
		return User{}, errConnRefused
	}
	return f.MemoryStore.GetUser(id)
}

func TestBreaker_PassesThrough(t *testing.T) {
	g := &flakyGateway{MemoryStore: seededMemory()}
	b := NewBreakerStore(g)

	u, err := b.GetUser(1)
	if err != nil || u.Username != "alice" {
		t.Fatalf("GetUser: %v %+v", err, u)
	}
}

func TestBreaker_NotFoundDoesNotTrip(t *testing.T) {
	g := &flakyGateway{MemoryStore: seededMemory()}
	b := NewBreakerStore(g)

	for i := 0; i < 20; i++ {
		if _, err := b.GetUser(999); !errors.Is(err, ErrNotFound) {
			t.Fatalf("call %d: expected ErrNotFound, got %v", i, err)
		}
	}
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	g := &flakyGateway{MemoryStore: seededMemory(), failing: true}
	b := NewBreakerStore(g)

	for i := 0; i < 5; i++ {
		if _, err := b.GetUser(1); !errors.Is(err, errConnRefused) {
			t.Fatalf("call %d: expected the raw failure, got %v", i, err)
		}
	}

	// breaker is open now; the underlying gateway must not be reached
	g.failing = false
	if _, err := b.GetUser(1); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable from open breaker, got %v", err)
	}
}
