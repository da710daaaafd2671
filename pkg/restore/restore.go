// Package restore reintegrates deferred files. When the working queue runs
// dry, every reserved deferred staging folder under the active input roots
// is emptied back into its parent directory so deferred items come around
// again.
package restore

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"voicesort/pkg/mover"
	"voicesort/pkg/protocol"
)

// Failure describes one file that could not be moved back. Failures do not
// abort the restoration pass; the caller records them as diagnostics.
type Failure struct {
	Src string
	Err error
}

// Restorer moves deferred files back into circulation.
type Restorer struct {
	fs afero.Fs
	mv *mover.Mover
}

// New creates a Restorer using mv for the actual moves.
func New(fs afero.Fs, mv *mover.Mover) *Restorer {
	return &Restorer{fs: fs, mv: mv}
}

// Restore locates deferred staging folders under every enabled, not-done
// root (recursively when recursive is set, otherwise only the direct child
// folder) and moves each file inside back to the folder's parent, with
// collision-free naming. It reports whether anything was moved.
func (r *Restorer) Restore(roots []protocol.InputRoot, recursive bool) (bool, []Failure) {
	restored := false
	var failures []Failure

	for _, root := range roots {
		if !root.Enabled || root.Done {
			continue
		}
		if ok, err := afero.DirExists(r.fs, root.Path); err != nil || !ok {
			continue
		}
		for _, dir := range r.deferDirs(root.Path, recursive) {
			moved, fails := r.drain(dir)
			restored = restored || moved
			failures = append(failures, fails...)
		}
	}
	return restored, failures
}

// deferDirs finds deferred staging folders under root.
func (r *Restorer) deferDirs(root string, recursive bool) []string {
	if !recursive {
		dir := filepath.Join(root, protocol.DeferDirName)
		if ok, err := afero.DirExists(r.fs, dir); err == nil && ok {
			return []string{dir}
		}
		return nil
	}

	var dirs []string
	_ = afero.Walk(r.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil || !info.IsDir() {
			return nil
		}
		if info.Name() == protocol.DeferDirName {
			dirs = append(dirs, path)
			return filepath.SkipDir
		}
		return nil
	})
	sort.Strings(dirs)
	return dirs
}

// drain moves every file in dir to dir's parent.
func (r *Restorer) drain(dir string) (bool, []Failure) {
	entries, err := afero.ReadDir(r.fs, dir)
	if err != nil {
		return false, nil
	}

	parent := filepath.Dir(dir)
	moved := false
	var failures []Failure
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		src := filepath.Join(dir, e.Name())
		dest := r.mv.FinalizeDest(parent, e.Name())
		if err := r.mv.Move(src, dest); err != nil {
			failures = append(failures, Failure{Src: src, Err: err})
			continue
		}
		moved = true
	}
	return moved, failures
}
