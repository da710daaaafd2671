package restore_test

import (
	"testing"

	"github.com/spf13/afero"

	"voicesort/pkg/mover"
	"voicesort/pkg/protocol"
	"voicesort/pkg/restore"
)

func newRestorer(t *testing.T) (afero.Fs, *restore.Restorer) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return fs, restore.New(fs, mover.New(fs, mover.Options{}))
}

func seed(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func roots(paths ...string) []protocol.InputRoot {
	rs := make([]protocol.InputRoot, len(paths))
	for i, p := range paths {
		rs[i] = protocol.InputRoot{Path: p, Enabled: true}
	}
	return rs
}

func TestRestoreFlat(t *testing.T) {
	fs, r := newRestorer(t)
	seed(t, fs, "/in/"+protocol.DeferDirName+"/a.wav", "a")
	seed(t, fs, "/in/"+protocol.DeferDirName+"/b.wav", "b")

	moved, fails := r.Restore(roots("/in"), false)
	if !moved {
		t.Error("restore reported nothing moved")
	}
	if len(fails) != 0 {
		t.Errorf("failures: %v", fails)
	}
	for _, p := range []string{"/in/a.wav", "/in/b.wav"} {
		if ok, _ := afero.Exists(fs, p); !ok {
			t.Errorf("%s not restored", p)
		}
	}

	// A second pass has nothing to do.
	moved, _ = r.Restore(roots("/in"), false)
	if moved {
		t.Error("second restore reported movement")
	}
}

func TestRestoreRecursiveFindsNestedDirs(t *testing.T) {
	fs, r := newRestorer(t)
	seed(t, fs, "/in/sub/"+protocol.DeferDirName+"/deep.wav", "d")

	// Flat mode does not reach the nested staging dir.
	moved, _ := r.Restore(roots("/in"), false)
	if moved {
		t.Error("flat restore reached nested staging dir")
	}

	moved, fails := r.Restore(roots("/in"), true)
	if !moved || len(fails) != 0 {
		t.Fatalf("recursive restore: moved=%v fails=%v", moved, fails)
	}
	if ok, _ := afero.Exists(fs, "/in/sub/deep.wav"); !ok {
		t.Error("deep.wav not restored to its parent")
	}
}

func TestRestoreCollisionOnReturn(t *testing.T) {
	fs, r := newRestorer(t)
	seed(t, fs, "/in/a.wav", "original")
	seed(t, fs, "/in/"+protocol.DeferDirName+"/a.wav", "deferred")

	moved, fails := r.Restore(roots("/in"), false)
	if !moved || len(fails) != 0 {
		t.Fatalf("restore: moved=%v fails=%v", moved, fails)
	}
	data, err := afero.ReadFile(fs, "/in/a (1).wav")
	if err != nil {
		t.Fatalf("read restored file: %v", err)
	}
	if string(data) != "deferred" {
		t.Errorf("restored content = %q", data)
	}
	data, _ = afero.ReadFile(fs, "/in/a.wav")
	if string(data) != "original" {
		t.Errorf("original clobbered: %q", data)
	}
}

func TestRestoreSkipsDisabledRoots(t *testing.T) {
	fs, r := newRestorer(t)
	seed(t, fs, "/in/"+protocol.DeferDirName+"/a.wav", "a")

	rs := []protocol.InputRoot{{Path: "/in", Enabled: false}}
	if moved, _ := r.Restore(rs, false); moved {
		t.Error("restore touched a disabled root")
	}
}
