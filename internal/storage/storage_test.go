package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/education-platform/backend/internal/config"
	"github.com/education-platform/backend/internal/logger"
)

func TestMaterialKey(t *testing.T) {
	key := MaterialKey(`C:\Users\ada\My Notes (final).pdf`)

	if !strings.HasPrefix(key, "materials/") {
		t.Fatalf("missing prefix: %q", key)
	}
	if !strings.HasSuffix(key, "-My_Notes__final_.pdf") {
		t.Fatalf("unexpected base name: %q", key)
	}
	if strings.Count(key, "/") != 1 {
		t.Fatalf("key must not contain nested paths: %q", key)
	}
	if MaterialKey("a.txt") == MaterialKey("a.txt") {
		t.Fatalf("keys must be unique")
	}
}

func TestLocalPutDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(dir, "/media/", logger.Nop())
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	ctx := context.Background()

	key := "materials/abc-notes.txt"
	if err := store.Put(ctx, key, strings.NewReader("hello"), "text/plain"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "materials", "abc-notes.txt"))
	if err != nil {
		t.Fatalf("read blob: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("unexpected content %q", data)
	}

	if got := store.URL(key); got != "/media/materials/abc-notes.txt" {
		t.Fatalf("URL: got %q", got)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "materials", "abc-notes.txt")); !os.IsNotExist(err) {
		t.Fatalf("expected blob to be removed, stat err: %v", err)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete of a missing blob should succeed: %v", err)
	}
}

func TestLocalRejectsTraversal(t *testing.T) {
	store, err := NewLocal(t.TempDir(), "/media", logger.Nop())
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	for _, key := range []string{"../escape.txt", "materials/../../x", "", "/abs"} {
		err := store.Put(context.Background(), key, strings.NewReader("x"), "")
		if !errors.Is(err, ErrInvalidKey) {
			t.Fatalf("Put(%q): expected ErrInvalidKey, got %v", key, err)
		}
	}
}

func TestLocalPutHonoursCancel(t *testing.T) {
	store, err := NewLocal(t.TempDir(), "/media", logger.Nop())
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.Put(ctx, "materials/x.txt", strings.NewReader("x"), ""); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNewSelectsLocal(t *testing.T) {
	cfg := config.StorageConfig{
		Driver:        config.StorageLocal,
		LocalDir:      t.TempDir(),
		PublicBaseURL: "/media",
	}

	store, err := New(context.Background(), cfg, logger.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := store.(*Local); !ok {
		t.Fatalf("expected *Local, got %T", store)
	}

	cfg.Driver = "ftp"
	if _, err := New(context.Background(), cfg, logger.Nop()); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
