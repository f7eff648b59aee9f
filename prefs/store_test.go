package prefs

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	if got := s.GetInt(KeyBestScore, 0); got != 0 {
		t.Errorf("Expected default 0, got %d", got)
	}
	if !s.GetBool(KeyIsSoundOn, true) {
		t.Error("Expected default sound on")
	}

	if err := s.SetInt(KeyBestScore, 15); err != nil {
		t.Fatalf("SetInt failed: %v", err)
	}
	if err := s.SetBool(KeyIsSoundOn, false); err != nil {
		t.Fatalf("SetBool failed: %v", err)
	}

	if got := s.GetInt(KeyBestScore, 0); got != 15 {
		t.Errorf("Expected 15, got %d", got)
	}
	if s.GetBool(KeyIsSoundOn, true) {
		t.Error("Expected sound off after SetBool(false)")
	}

	// Overwrite
	if err := s.SetInt(KeyBestScore, 20); err != nil {
		t.Fatal(err)
	}
	if got := s.GetInt(KeyBestScore, 0); got != 20 {
		t.Errorf("Expected 20 after overwrite, got %d", got)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "prefs.db"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestSQLiteStorePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.db")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	if err := s.SetInt(KeyGamesPlayedForRating, 4); err != nil {
		t.Fatal(err)
	}
	if err := s.SetBool(KeyHasClickedRateUs, true); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer reopened.Close()

	if got := reopened.GetInt(KeyGamesPlayedForRating, 0); got != 4 {
		t.Errorf("Expected 4 games after reopen, got %d", got)
	}
	if !reopened.GetBool(KeyHasClickedRateUs, false) {
		t.Error("Expected rated flag after reopen")
	}
}

func TestSQLiteStoreDoubleClose(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "prefs.db"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err == nil {
		t.Error("Expected error on second close")
	}
}

func TestSQLiteStoreWriteAfterClose(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "prefs.db"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetInt(KeyBestScore, 12); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	if err := s.SetInt(KeyBestScore, 20); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
	if err := s.SetBool(KeyIsSoundOn, false); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed from SetBool, got %v", err)
	}
	// Failed writes leave the cache untouched
	if got := s.GetInt(KeyBestScore, 0); got != 12 {
		t.Errorf("Expected cached 12, got %d", got)
	}
}

func TestSQLiteStoreConcurrentCloseAndWrite(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "prefs.db"))
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if err := s.SetInt(KeyGameOverCount, n*100+j); err != nil && !errors.Is(err, ErrClosed) {
					t.Errorf("Unexpected write error: %v", err)
					return
				}
			}
		}(i)
	}
	s.Close()
	wg.Wait()
}
