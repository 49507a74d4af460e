package state

import "testing"

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if _, ok := store.Get("mf_token"); ok {
		t.Error("expected miss on empty store")
	}

	if err := store.Set("mf_token", "abc123"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok := store.Get("mf_token")
	if !ok || got != "abc123" {
		t.Errorf("Get = %q, %v; want abc123, true", got, ok)
	}

	if err := store.Set("mf_token", "xyz"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if got, _ := store.Get("mf_token"); got != "xyz" {
		t.Errorf("overwrite not visible: %q", got)
	}

	if err := store.Delete("mf_token"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := store.Get("mf_token"); ok {
		t.Error("expected miss after delete")
	}
}

func TestFileStoreDeleteMissing(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := store.Delete("nope"); err != nil {
		t.Errorf("deleting missing key should be a no-op, got %v", err)
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := store.Set("mf_tipo", "empresa"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	reopened, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got, ok := reopened.Get("mf_tipo"); !ok || got != "empresa" {
		t.Errorf("value lost across reopen: %q, %v", got, ok)
	}
}
