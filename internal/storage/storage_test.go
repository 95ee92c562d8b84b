package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/tubesync/internal/shared"
)

func TestDir(t *testing.T) {
	ctx := context.Background()

	t.Run("OpenDir", func(t *testing.T) {
		t.Run("missing path", func(t *testing.T) {
			_, err := OpenDir(filepath.Join(t.TempDir(), "missing"))
			if !errors.Is(err, shared.ErrCapabilityUnavailable) {
				t.Errorf("expected ErrCapabilityUnavailable, got %v", err)
			}
		})

		t.Run("file instead of directory", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "file.txt")
			os.WriteFile(path, []byte("x"), 0644)

			if _, err := OpenDir(path); !errors.Is(err, shared.ErrCapabilityUnavailable) {
				t.Errorf("expected ErrCapabilityUnavailable, got %v", err)
			}
		})
	})

	t.Run("write read and list", func(t *testing.T) {
		root := t.TempDir()
		dir, err := OpenDir(root)
		if err != nil {
			t.Fatalf("OpenDir() error = %v", err)
		}

		if err := dir.WriteText(ctx, "b.csv", "first"); err != nil {
			t.Fatalf("WriteText() error = %v", err)
		}
		if err := dir.WriteText(ctx, "b.csv", "second"); err != nil {
			t.Fatalf("WriteText() overwrite error = %v", err)
		}
		dir.WriteText(ctx, "a.txt", "x")
		os.MkdirAll(filepath.Join(root, "nested", "deep"), 0755)
		os.WriteFile(filepath.Join(root, "nested", "inner.csv"), []byte("y"), 0644)

		text, err := dir.ReadText(ctx, "b.csv")
		if err != nil {
			t.Fatalf("ReadText() error = %v", err)
		}
		if text != "second" {
			t.Errorf("expected truncated content, got %q", text)
		}

		entries, err := dir.Entries(ctx)
		if err != nil {
			t.Fatalf("Entries() error = %v", err)
		}

		want := []Entry{{"a.txt", KindFile}, {"b.csv", KindFile}, {"nested", KindDir}}
		if len(entries) != len(want) {
			t.Fatalf("expected flat listing %v, got %v", want, entries)
		}
		for i := range want {
			if entries[i] != want[i] {
				t.Errorf("entry %d = %v, want %v", i, entries[i], want[i])
			}
		}
	})

	t.Run("Sub creates or opens", func(t *testing.T) {
		root := t.TempDir()
		dir, _ := OpenDir(root)

		sub, err := dir.Sub("extracted_playlists")
		if err != nil {
			t.Fatalf("Sub() error = %v", err)
		}
		if sub.Name() != "extracted_playlists" {
			t.Errorf("unexpected name %s", sub.Name())
		}
		if _, err := dir.Sub("extracted_playlists"); err != nil {
			t.Errorf("opening an existing sub folder should succeed: %v", err)
		}
		if info, err := os.Stat(filepath.Join(root, "extracted_playlists")); err != nil || !info.IsDir() {
			t.Error("sub folder should exist on disk")
		}
	})

	t.Run("rejects path-like names", func(t *testing.T) {
		dir, _ := OpenDir(t.TempDir())

		for _, name := range []string{"", ".", "..", "../escape.csv", "a/b.csv", `a\b.csv`} {
			if err := dir.WriteText(ctx, name, "x"); !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("WriteText(%q) expected ErrInvalidArgument, got %v", name, err)
			}
		}
		if _, err := dir.Sub("../up"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("Sub expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		dir, _ := OpenDir(t.TempDir())
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		if _, err := dir.Entries(cctx); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}
