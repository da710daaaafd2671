package mover_test

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"

	"voicesort/pkg/mover"
)

func newMemMover(t *testing.T, opts mover.Options) (afero.Fs, *mover.Mover) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return fs, mover.New(fs, opts)
}

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestMoveSimple(t *testing.T) {
	fs, m := newMemMover(t, mover.Options{})
	writeFile(t, fs, "/in/a.wav", "audio")
	fs.MkdirAll("/out", 0o755)

	if err := m.Move("/in/a.wav", "/out/a.wav"); err != nil {
		t.Fatalf("move: %v", err)
	}
	if ok, _ := afero.Exists(fs, "/in/a.wav"); ok {
		t.Error("source still exists")
	}
	data, err := afero.ReadFile(fs, "/out/a.wav")
	if err != nil {
		t.Fatalf("read dest: %v", err)
	}
	if string(data) != "audio" {
		t.Errorf("dest content = %q", data)
	}
}

// flakyFs fails Rename a fixed number of times before delegating.
type flakyFs struct {
	afero.Fs
	failures int
	calls    int
}

func (f *flakyFs) Rename(oldname, newname string) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("file in use")
	}
	return f.Fs.Rename(oldname, newname)
}

func TestMoveRetriesTransientFailures(t *testing.T) {
	base := afero.NewMemMapFs()
	writeFile(t, base, "/in/a.wav", "x")
	flaky := &flakyFs{Fs: base, failures: 3}
	m := mover.New(flaky, mover.Options{Attempts: 10, Backoff: time.Microsecond})

	if err := m.Move("/in/a.wav", "/in/b.wav"); err != nil {
		t.Fatalf("move: %v", err)
	}
	if flaky.calls != 4 {
		t.Errorf("rename called %d times, want 4", flaky.calls)
	}
}

func TestMoveExhaustsAttempts(t *testing.T) {
	base := afero.NewMemMapFs()
	writeFile(t, base, "/in/a.wav", "x")
	flaky := &flakyFs{Fs: base, failures: 1000}
	m := mover.New(flaky, mover.Options{Attempts: 3, Backoff: time.Microsecond})

	err := m.Move("/in/a.wav", "/in/b.wav")
	if err == nil {
		t.Fatal("move succeeded, want error")
	}
	if flaky.calls != 3 {
		t.Errorf("rename called %d times, want 3", flaky.calls)
	}
	if ok, _ := afero.Exists(base, "/in/a.wav"); !ok {
		t.Error("source gone after failed move")
	}
}

func TestFinalizeDestNoCollision(t *testing.T) {
	fs, m := newMemMover(t, mover.Options{})
	fs.MkdirAll("/out", 0o755)

	if got := m.FinalizeDest("/out", "voice.wav"); got != "/out/voice.wav" {
		t.Errorf("FinalizeDest = %q", got)
	}
}

func TestFinalizeDestDisambiguates(t *testing.T) {
	fs, m := newMemMover(t, mover.Options{})
	writeFile(t, fs, "/out/voice.wav", "1")
	writeFile(t, fs, "/out/voice (1).wav", "2")

	if got := m.FinalizeDest("/out", "voice.wav"); got != "/out/voice (2).wav" {
		t.Errorf("FinalizeDest = %q, want /out/voice (2).wav", got)
	}
}

func TestFinalizeDestNoExtension(t *testing.T) {
	fs, m := newMemMover(t, mover.Options{})
	writeFile(t, fs, "/out/readme", "1")

	if got := m.FinalizeDest("/out", "readme"); got != "/out/readme (1)" {
		t.Errorf("FinalizeDest = %q, want /out/readme (1)", got)
	}
}
