package fileutil

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"
)

func TestWriteAtomicReplacesTarget(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "parameters.json")

	for _, content := range []string{"first\n", "second\n"} {
		err := WriteAtomic(context.Background(), target, 0o644, func(w io.Writer) error {
			_, err := io.WriteString(w, content)
			return err
		})
		if err != nil {
			t.Fatalf("WriteAtomic: %v", err)
		}
		got, err := os.ReadFile(target)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != content {
			t.Fatalf("content mismatch: got %q, want %q", got, content)
		}
	}

	assertNoTempFiles(t, filepath.Dir(target))
}

func TestWriteAtomicKeepsTargetOnError(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "report.tex")
	if err := os.WriteFile(target, []byte("original"), 0o644); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	err := WriteAtomic(context.Background(), target, 0o644, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected writer error, got %v", err)
	}

	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "original" {
		t.Fatalf("target modified: %q", got)
	}
	assertNoTempFiles(t, dir)
}

func TestWriteAtomicRespectsLock(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.json")

	holder := flock.New(LockPath(target))
	locked, err := holder.TryLock()
	if err != nil || !locked {
		t.Fatalf("failed to take lock: locked=%v err=%v", locked, err)
	}
	defer holder.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()
	err = WriteAtomic(ctx, target, 0o644, func(w io.Writer) error { return nil })
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatalf("expected target to be absent, got %v", err)
	}
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".*.tmp"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Fatalf("temporary files left behind: %v", matches)
	}
}
