package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/abhisek/orientation/internal/i18n"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file:" + filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil *sql.DB")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestPreferenceGetSet(t *testing.T) {
	s := openTestStore(t)
	repo := s.PreferenceRepo()
	ctx := context.Background()

	if _, ok, err := repo.Get(ctx, "theme"); err != nil || ok {
		t.Fatalf("Get(unset) = ok %v, err %v; want false, nil", ok, err)
	}

	if err := repo.Set(ctx, "theme", "dark"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := repo.Set(ctx, "theme", "light"); err != nil {
		t.Fatalf("Set (overwrite): %v", err)
	}

	v, ok, err := repo.Get(ctx, "theme")
	if err != nil || !ok {
		t.Fatalf("Get = ok %v, err %v", ok, err)
	}
	if v != "light" {
		t.Errorf("Get = %q, want %q", v, "light")
	}

	var count int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM preferences").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("row count = %d, want 1 (upsert)", count)
	}

	if err := repo.Delete(ctx, "theme"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := repo.Get(ctx, "theme"); ok {
		t.Error("Get after Delete should be unset")
	}
	if err := repo.Delete(ctx, "theme"); err != nil {
		t.Errorf("Delete(missing) = %v, want nil", err)
	}
}

func TestLanguagePreference(t *testing.T) {
	s := openTestStore(t)
	repo := s.PreferenceRepo()
	ctx := context.Background()

	lang, ok, err := repo.Language(ctx)
	if err != nil {
		t.Fatalf("Language: %v", err)
	}
	if ok || lang != i18n.English {
		t.Errorf("Language(unset) = %q, %v; want en, false", lang, ok)
	}

	if err := repo.SetLanguage(ctx, i18n.Spanish); err != nil {
		t.Fatalf("SetLanguage: %v", err)
	}
	lang, ok, err = repo.Language(ctx)
	if err != nil || !ok || lang != i18n.Spanish {
		t.Errorf("Language = %q, %v, %v; want es, true, nil", lang, ok, err)
	}

	if err := repo.SetLanguage(ctx, i18n.Language("fr")); err == nil {
		t.Error("SetLanguage(fr) should fail")
	}
}

func TestLanguagePreferenceIgnoresInvalidValue(t *testing.T) {
	s := openTestStore(t)
	repo := s.PreferenceRepo()
	ctx := context.Background()

	if err := repo.Set(ctx, KeyLanguage, "klingon"); err != nil {
		t.Fatal(err)
	}
	lang, ok, err := repo.Language(ctx)
	if err != nil || ok || lang != i18n.English {
		t.Errorf("Language = %q, %v, %v; want en, false, nil", lang, ok, err)
	}
}

func TestLanguagePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")
	ctx := context.Background()

	s1, err := Open("file:" + path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s1.PreferenceRepo().SetLanguage(ctx, i18n.Spanish); err != nil {
		t.Fatal(err)
	}
	s1.Close()

	s2, err := Open("file:" + path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	lang, ok, err := s2.PreferenceRepo().Language(ctx)
	if err != nil || !ok || lang != i18n.Spanish {
		t.Errorf("Language after reopen = %q, %v, %v", lang, ok, err)
	}
}

func TestDefaultDBPathEnv(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "o.db")
	t.Setenv("ORIENTATION_DB", p)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if got != p {
		t.Errorf("DefaultDBPath() = %q, want %q", got, p)
	}
	if _, err := os.Stat(filepath.Dir(p)); err != nil {
		t.Errorf("parent dir not created: %v", err)
	}
}

func TestDefaultDBPathXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ORIENTATION_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "orientation", "orientation.db")
	if got != want {
		t.Errorf("DefaultDBPath() = %q, want %q", got, want)
	}
}
