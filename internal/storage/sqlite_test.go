package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReadMissingKey(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Read(1)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Read() of missing key: expected ErrNotFound, got %v", err)
	}
}

func TestStoreWriteAndRead(t *testing.T) {
	store := openTestStore(t)

	if err := store.Write(1, []byte{1}); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	got, err := store.Read(1)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if !bytes.Equal(got, []byte{1}) {
		t.Errorf("Read() = %v, want [1]", got)
	}

	// Overwrite keeps a single row per key
	if err := store.Write(1, []byte{0}); err != nil {
		t.Fatalf("Write() overwrite failed: %v", err)
	}
	got, err = store.Read(1)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if !bytes.Equal(got, []byte{0}) {
		t.Errorf("Read() after overwrite = %v, want [0]", got)
	}

	// Other keys are unaffected
	if _, err := store.Read(2); !errors.Is(err, ErrNotFound) {
		t.Errorf("Read(2): expected ErrNotFound, got %v", err)
	}
}

func TestStoreValuesSurviveReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.Write(7, []byte{1}); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	store.Close()

	reopened, err := Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Read(7)
	if err != nil {
		t.Fatalf("Read() after reopen failed: %v", err)
	}
	if !bytes.Equal(got, []byte{1}) {
		t.Errorf("Read() after reopen = %v, want [1]", got)
	}
}

func TestStoreSaveAndRetrieveScores(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{100, 50, 200} {
		if _, err := store.SaveScore(s, "buttons"); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore(150, "tilt"); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 4 {
		t.Fatalf("Expected 4 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{200, 150, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
	}
	if scores[1].Control != "tilt" {
		t.Errorf("Expected control 'tilt' for 150, got %q", scores[1].Control)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore((i+1)*100, "buttons")
	}

	scores, err := store.TopScores(3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty table, got %d", high)
	}

	store.SaveScore(100, "buttons")
	store.SaveScore(300, "tilt")
	store.SaveScore(200, "buttons")

	high, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScoresKeepsSettings(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(100, "buttons")
	if err := store.Write(1, []byte{1}); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	if err := store.ClearScores(); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores(10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}

	if _, err := store.Read(1); err != nil {
		t.Errorf("Settings should survive ClearScores, got %v", err)
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestExpandHome(t *testing.T) {
	got, err := ExpandHome("/tmp/x.db")
	if err != nil || got != "/tmp/x.db" {
		t.Errorf("ExpandHome(abs) = %q, %v", got, err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err = ExpandHome("~/.falldown/falldown.db")
	if err != nil {
		t.Fatalf("ExpandHome() failed: %v", err)
	}
	want := filepath.Join(home, ".falldown", "falldown.db")
	if got != want {
		t.Errorf("ExpandHome() = %q, want %q", got, want)
	}
}
