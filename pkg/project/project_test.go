package project_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"voicesort/pkg/project"
	"voicesort/pkg/protocol"
)

func newRegistry(t *testing.T) *project.Registry {
	t.Helper()
	r, err := project.NewRegistryAt(t.TempDir())
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	return r
}

func TestCreateListDelete(t *testing.T) {
	r := newRegistry(t)

	key, err := r.Create("My Project")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if key != "My_Project" {
		t.Errorf("key = %q, want My_Project", key)
	}
	if !r.Exists(key) {
		t.Error("created project does not exist")
	}

	// Creating again is a no-op that returns the same key.
	again, err := r.Create("My Project")
	if err != nil || again != key {
		t.Errorf("re-create = %q, %v", again, err)
	}

	if _, err := r.Create("other"); err != nil {
		t.Fatal(err)
	}
	keys, err := r.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if want := []string{"My_Project", "other"}; !reflect.DeepEqual(keys, want) {
		t.Errorf("list = %v, want %v", keys, want)
	}

	if err := r.Delete(key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if r.Exists(key) {
		t.Error("deleted project still exists")
	}
	if err := r.Delete(key); err == nil {
		t.Error("deleting a missing project succeeded")
	}
}

func TestRename(t *testing.T) {
	r := newRegistry(t)
	if _, err := r.Create("old"); err != nil {
		t.Fatal(err)
	}

	newKey, err := r.Rename("old", "new name")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if newKey != "new_name" {
		t.Errorf("new key = %q", newKey)
	}
	if r.Exists("old") || !r.Exists("new_name") {
		t.Error("rename did not move the directory")
	}

	if _, err := r.Rename("missing", "x"); err == nil {
		t.Error("renaming a missing project succeeded")
	}
	if _, err := r.Create("taken"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Rename("new_name", "taken"); err == nil {
		t.Error("renaming onto an existing project succeeded")
	}
}

func TestPaths(t *testing.T) {
	base := t.TempDir()
	r, err := project.NewRegistryAt(base)
	if err != nil {
		t.Fatal(err)
	}

	if got := r.ConfigPath(); got != filepath.Join(base, protocol.ConfigFileName) {
		t.Errorf("config path = %q", got)
	}
	want := filepath.Join(base, protocol.ProjectsDirName, "k", protocol.DBFileName)
	if got := r.DBPath("k"); got != want {
		t.Errorf("db path = %q, want %q", got, want)
	}
}

func TestNewRegistryHonorsEnvOverride(t *testing.T) {
	base := t.TempDir()
	t.Setenv("VOICESORT_HOME", base)

	r, err := project.NewRegistry()
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if r.BaseDir() != base {
		t.Errorf("base dir = %q, want %q", r.BaseDir(), base)
	}
	if _, err := os.Stat(filepath.Join(base, protocol.ProjectsDirName)); err != nil {
		t.Errorf("projects dir not created: %v", err)
	}
}
