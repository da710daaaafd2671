// Package scanner builds the working file queue from the configured input
// roots. Scans have no side effects and reflect a filesystem snapshot at
// call time; nothing is cached between calls.
package scanner

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/h2non/filetype"
	"github.com/spf13/afero"

	"voicesort/pkg/protocol"
)

// sniffLen is how many leading bytes filetype needs for magic detection.
const sniffLen = 261

// Options configures a Scanner.
type Options struct {
	// Sniff additionally verifies candidates by magic bytes; files whose
	// content is not recognized as audio are dropped even when the
	// extension matches.
	Sniff bool
}

// Scanner walks input roots and produces the deduplicated working queue.
type Scanner struct {
	fs    afero.Fs
	sniff bool
}

// New creates a Scanner over fs.
func New(fs afero.Fs, opts Options) *Scanner {
	return &Scanner{fs: fs, sniff: opts.Sniff}
}

// Scan returns the working queue for the enabled, not-done roots. Paths are
// ordered lexicographically within each root, roots are processed in their
// given order, and a file reachable from two roots appears once (first
// occurrence wins). Files inside reserved staging folders never appear.
func (s *Scanner) Scan(roots []protocol.InputRoot, recursive bool) []string {
	var files []string
	for _, root := range roots {
		if !root.Enabled || root.Done {
			continue
		}
		files = append(files, s.scanRoot(root.Path, recursive)...)
	}

	seen := make(map[string]struct{}, len(files))
	queue := make([]string, 0, len(files))
	for _, f := range files {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		queue = append(queue, f)
	}
	return queue
}

// scanRoot lists one root. Unreadable directories are skipped rather than
// failing the scan.
func (s *Scanner) scanRoot(root string, recursive bool) []string {
	info, err := s.fs.Stat(root)
	if err != nil || !info.IsDir() {
		return nil
	}
	if protocol.IsStagingDir(filepath.Base(root)) {
		return nil
	}
	if recursive {
		return s.walk(root)
	}
	return s.listFlat(root)
}

// walk collects audio files under root at arbitrary depth, skipping any
// subtree rooted at a reserved staging folder.
func (s *Scanner) walk(root string) []string {
	var found []string
	_ = afero.Walk(s.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != root && protocol.IsStagingDir(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if s.accept(path) {
			found = append(found, path)
		}
		return nil
	})
	sort.Strings(found)
	return found
}

// listFlat collects audio files that are direct children of root.
func (s *Scanner) listFlat(root string) []string {
	entries, err := afero.ReadDir(s.fs, root)
	if err != nil {
		return nil
	}
	var found []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(root, e.Name())
		if s.accept(path) {
			found = append(found, path)
		}
	}
	sort.Strings(found)
	return found
}

// accept applies the extension allow-list and, in sniff mode, the
// magic-byte check.
func (s *Scanner) accept(path string) bool {
	if !protocol.IsAudioPath(path) {
		return false
	}
	if !s.sniff {
		return true
	}
	return s.sniffAudio(path)
}

// sniffAudio reads the file head and asks filetype whether it is audio.
// Read failures reject the file; a later scan picks it up once readable.
func (s *Scanner) sniffAudio(path string) bool {
	f, err := s.fs.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := f.Read(head)
	if n == 0 && err != nil {
		return false
	}
	return filetype.IsAudio(head[:n])
}
