package cache_test

import (
	"testing"

	"github.com/simondevenish/EmberScript/internal/cache"
)

func openInTempDir(t *testing.T) *cache.Disk {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	d, err := cache.Open("ember-test")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return d
}

func TestLookupMissIsNotAnError(t *testing.T) {
	d := openInTempDir(t)
	_, ok, err := d.Lookup("deadbeef")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if ok {
		t.Fatalf("expected a cache miss")
	}
}

func TestStoreThenLookupRoundTrips(t *testing.T) {
	d := openInTempDir(t)
	payload := &cache.CachedChunk{SourceHash: "deadbeef", Chunk: []byte{1, 2, 3}}
	if err := d.Store("deadbeef", payload); err != nil {
		t.Fatalf("Store: %v", err)
	}

	got, ok, err := d.Lookup("deadbeef")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !ok {
		t.Fatalf("expected a cache hit")
	}
	if got.SourceHash != "deadbeef" || string(got.Chunk) != "\x01\x02\x03" {
		t.Fatalf("got %+v, want matching payload", got)
	}
}
