package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/genforge-labs/genforge/internal/logging"
)

func newTestCache(t *testing.T, enabled bool) *Cache {
	t.Helper()
	c, err := New(t.TempDir(), enabled, 0, logging.Discard())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return c
}

func TestStoreLookup_RoundTrip(t *testing.T) {
	c := newTestCache(t, true)

	c.Store("qwen2.5-coder", "write a todo app", "here is the code")

	got, ok := c.Lookup("qwen2.5-coder", "write a todo app")
	if !ok {
		t.Fatal("expected cache hit after Store")
	}
	if got != "here is the code" {
		t.Errorf("Lookup = %q, want %q", got, "here is the code")
	}
}

func TestLookup_MissForDifferentModel(t *testing.T) {
	c := newTestCache(t, true)

	c.Store("qwen2.5-coder", "prompt", "response")

	if _, ok := c.Lookup("codellama", "prompt"); ok {
		t.Error("expected miss for same prompt under a different model")
	}
}

func TestDisabled_NoHitsNoDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	c, err := New(dir, false, time.Hour, logging.Discard())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	c.Store("m", "p", "x")
	if _, ok := c.Lookup("m", "p"); ok {
		t.Error("disabled cache must always miss")
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("disabled cache must not create its directory")
	}
}

func TestLookup_ReadsFromDiskAfterRestart(t *testing.T) {
	dir := t.TempDir()
	c1, err := New(dir, true, 0, logging.Discard())
	if err != nil {
		t.Fatal(err)
	}
	c1.Store("m", "p", "persisted")

	// A fresh instance has a cold memory layer and must fall back to disk.
	c2, err := New(dir, true, 0, logging.Discard())
	if err != nil {
		t.Fatal(err)
	}
	got, ok := c2.Lookup("m", "p")
	if !ok || got != "persisted" {
		t.Errorf("Lookup after restart = (%q, %v), want (%q, true)", got, ok, "persisted")
	}
}

func TestEvictOlderThan(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir, true, 0, logging.Discard())
	if err != nil {
		t.Fatal(err)
	}

	c.Store("m", "old", "stale")
	c.Store("m", "new", "fresh")

	// Backdate the old entry beyond the age limit.
	oldPath := filepath.Join(dir, Fingerprint("m", "old"))
	past := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(oldPath, past, past); err != nil {
		t.Fatal(err)
	}

	removed := c.EvictOlderThan(time.Hour)
	if removed != 1 {
		t.Errorf("EvictOlderThan removed %d entries, want 1", removed)
	}
	if _, err := os.Stat(oldPath); !os.IsNotExist(err) {
		t.Error("stale entry should be gone from disk")
	}
	if _, ok := c.Lookup("m", "new"); !ok {
		t.Error("fresh entry should survive eviction")
	}
}

func TestFingerprint_Deterministic(t *testing.T) {
	a := Fingerprint("model", "prompt")
	b := Fingerprint("model", "prompt")
	if a != b {
		t.Errorf("Fingerprint not deterministic: %q vs %q", a, b)
	}
	if len(a) != 64 {
		t.Errorf("Fingerprint length = %d, want 64 hex chars", len(a))
	}
	if Fingerprint("model", "other") == a {
		t.Error("different prompts must not share a fingerprint")
	}
}
