package authx

import "testing"

func TestSessionStore_SaveLoad(t *testing.T) {
	store := NewSessionStore(NewMemoryStorage())

	bundle := TokenBundle{
		AccessToken:  "AT",
		IDToken:      "ID",
		RefreshToken: "RT",
		ExpiresIn:    3600,
		TokenType:    "Bearer",
	}
	if err := store.Save(bundle); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, ok := store.Load()
	if !ok {
		t.Fatal("expected bundle after Save")
	}
	if loaded != bundle {
		t.Fatalf("loaded bundle differs: got %+v, want %+v", loaded, bundle)
	}
}

func TestSessionStore_SaveReplacesWholesale(t *testing.T) {
	store := NewSessionStore(NewMemoryStorage())

	if err := store.Save(TokenBundle{AccessToken: "old", RefreshToken: "old-rt"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(TokenBundle{AccessToken: "new"}); err != nil {
		t.Fatalf("Save replacement: %v", err)
	}

	loaded, ok := store.Load()
	if !ok {
		t.Fatal("expected bundle")
	}
	if loaded.AccessToken != "new" || loaded.RefreshToken != "" {
		t.Fatalf("expected wholesale replacement, got %+v", loaded)
	}
}

func TestSessionStore_ClearIdempotent(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewSessionStore(storage)

	if err := store.Save(TokenBundle{AccessToken: "AT"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	storage.Set(profileStorageKey, `{"cached":"profile"}`)

	store.Clear()
	if _, ok := store.Load(); ok {
		t.Fatal("expected absent after Clear")
	}
	if _, ok := storage.Get(profileStorageKey); ok {
		t.Fatal("expected profile key removed by Clear")
	}

	// Clearing an empty store is not an error.
	store.Clear()
	if _, ok := store.Load(); ok {
		t.Fatal("expected absent after second Clear")
	}
}

func TestSessionStore_CorruptPayloadIsAbsent(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewSessionStore(storage)

	storage.Set(bundleStorageKey, "{not json")
	if _, ok := store.Load(); ok {
		t.Fatal("expected corrupt payload to read as absent")
	}
}
