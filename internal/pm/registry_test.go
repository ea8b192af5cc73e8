package pm_test

import (
	"testing"

	"github.com/simondevenish/EmberScript/internal/pm"
)

func TestLoadWithoutExistingFileIsEmpty(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	idx, err := pm.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(idx.List()) != 0 {
		t.Fatalf("expected an empty index, got %d entries", len(idx.List()))
	}
}

func TestAddSaveLoadRoundTrips(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	idx, err := pm.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	idx.Add(pm.Entry{Name: "json-utils", Version: "1.0.0", Source: "local", InstalledAt: "2026-08-06"})
	if err := idx.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := pm.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := reloaded.List()
	if len(got) != 1 || got[0].Name != "json-utils" {
		t.Fatalf("got %+v, want one entry named json-utils", got)
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	idx, _ := pm.Load()
	idx.Add(pm.Entry{Name: "JSON-Utils", Version: "1.0.0"})
	idx.Add(pm.Entry{Name: "mathx", Version: "2.0.0"})

	got := idx.Search("json")
	if len(got) != 1 || got[0].Name != "JSON-Utils" {
		t.Fatalf("got %+v, want one match for JSON-Utils", got)
	}
}

func TestRemoveReportsPresence(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	idx, _ := pm.Load()
	idx.Add(pm.Entry{Name: "mathx", Version: "1.0.0"})

	if !idx.Remove("mathx") {
		t.Fatalf("expected Remove to report the entry was present")
	}
	if idx.Remove("mathx") {
		t.Fatalf("expected a second Remove to report absence")
	}
}
