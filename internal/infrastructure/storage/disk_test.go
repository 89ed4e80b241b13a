package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskStore_SaveAndOpen(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	path, err := store.Save(context.Background(), "quotations", "QT-1.pdf", strings.NewReader("%PDF-1.7 data"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if path != filepath.Join("quotations", "QT-1.pdf") {
		t.Fatalf("unexpected stored path %q", path)
	}

	f, err := store.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	data, _ := io.ReadAll(f)
	if string(data) != "%PDF-1.7 data" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestDiskStore_SaveReplacesExisting(t *testing.T) {
	store, _ := NewDiskStore(t.TempDir())

	if _, err := store.Save(context.Background(), "logos", "CMP-1.png", strings.NewReader("old")); err != nil {
		t.Fatalf("save: %v", err)
	}
	path, err := store.Save(context.Background(), "logos", "CMP-1.png", strings.NewReader("new"))
	if err != nil {
		t.Fatalf("replace: %v", err)
	}

	f, err := store.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	data, _ := io.ReadAll(f)
	if string(data) != "new" {
		t.Fatalf("expected replaced content, got %q", data)
	}
}

func TestDiskStore_RejectsEscapingPaths(t *testing.T) {
	root := t.TempDir()
	store, _ := NewDiskStore(root)

	if _, err := store.Open(context.Background(), "../outside"); err == nil {
		t.Fatal("expected path escape rejected")
	}
	if err := store.Remove(context.Background(), "/etc/passwd"); err == nil {
		t.Fatal("expected absolute path rejected")
	}
}

func TestDiskStore_RemoveMissingIsNoError(t *testing.T) {
	store, _ := NewDiskStore(t.TempDir())
	if err := store.Remove(context.Background(), "quotations/ghost.pdf"); err != nil {
		t.Fatalf("remove missing: %v", err)
	}
}

func TestDiskStore_SaveStripsDirectoryFromName(t *testing.T) {
	root := t.TempDir()
	store, _ := NewDiskStore(root)

	path, err := store.Save(context.Background(), "logos", "../../evil.png", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if path != filepath.Join("logos", "evil.png") {
		t.Fatalf("expected base name only, got %q", path)
	}
	if _, err := os.Stat(filepath.Join(root, "logos", "evil.png")); err != nil {
		t.Fatalf("expected file under root: %v", err)
	}
}
