package engine_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"

	"voicesort/pkg/engine"
	"voicesort/pkg/store"
)

func TestWatchRootsSignalsOnCreate(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := store.Open(filepath.Join(t.TempDir(), "voicesort.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	root := t.TempDir()
	eng, err := engine.New(ctx, st, "watch", engine.Options{Fs: afero.NewOsFs()})
	if err != nil {
		t.Fatal(err)
	}
	if err := eng.AddInputRoot(ctx, root); err != nil {
		t.Fatal(err)
	}

	ch, err := eng.WatchRoots(ctx, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	if err := os.WriteFile(filepath.Join(root, "a.wav"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case _, ok := <-ch:
		if !ok {
			t.Fatal("channel closed before signaling")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no signal after file creation")
	}

	cancel()
	select {
	case _, ok := <-ch:
		if ok {
			// A buffered signal may still be pending; the close follows.
			_, ok = <-ch
			if ok {
				t.Fatal("channel not closed after cancel")
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestWatchRootsNoRoots(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(filepath.Join(t.TempDir(), "voicesort.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	eng, err := engine.New(ctx, st, "watch", engine.Options{Fs: afero.NewOsFs()})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := eng.WatchRoots(ctx, 0); err == nil {
		t.Error("watch with no roots succeeded")
	}
}
