// Package mover performs single file moves with bounded retry, plus
// collision-free destination naming. Retries absorb transient failures such
// as a media handle or antivirus scan still holding the source file.
package mover

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// Defaults for the retry loop.
const (
	DefaultAttempts = 10
	DefaultBackoff  = 50 * time.Millisecond
)

// Options tunes the retry loop. Zero values fall back to the defaults.
type Options struct {
	Attempts int
	Backoff  time.Duration
}

// Mover moves files on an afero filesystem.
type Mover struct {
	fs       afero.Fs
	attempts int
	backoff  time.Duration
}

// New creates a Mover over fs with the given options.
func New(fs afero.Fs, opts Options) *Mover {
	if opts.Attempts <= 0 {
		opts.Attempts = DefaultAttempts
	}
	if opts.Backoff <= 0 {
		opts.Backoff = DefaultBackoff
	}
	return &Mover{fs: fs, attempts: opts.Attempts, backoff: opts.Backoff}
}

// Move renames src to dst, retrying up to the configured attempt bound with
// a fixed backoff between attempts. When rename fails in a way that looks
// like a cross-device move, it falls back to copy-and-remove. If all
// attempts fail the last error is returned and the filesystem is left in
// its pre-attempt state.
func (m *Mover) Move(src, dst string) error {
	var lastErr error
	for i := 0; i < m.attempts; i++ {
		if i > 0 {
			time.Sleep(m.backoff)
		}
		lastErr = m.moveOnce(src, dst)
		if lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("move %s -> %s after %d attempts: %w", src, dst, m.attempts, lastErr)
}

// moveOnce performs one move attempt.
func (m *Mover) moveOnce(src, dst string) error {
	err := m.fs.Rename(src, dst)
	if err == nil {
		return nil
	}
	if isCrossDevice(err) {
		return m.copyAndRemove(src, dst)
	}
	return err
}

// isCrossDevice reports whether err looks like an EXDEV-style rename
// failure that a copy can work around.
func isCrossDevice(err error) bool {
	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) {
		return false
	}
	return strings.Contains(strings.ToLower(linkErr.Error()), "cross-device")
}

// copyAndRemove copies src to dst then deletes src, for moves that cross
// filesystem boundaries.
func (m *Mover) copyAndRemove(src, dst string) error {
	in, err := m.fs.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := m.fs.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = m.fs.Remove(dst)
		return fmt.Errorf("copy content: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = m.fs.Remove(dst)
		return fmt.Errorf("flush destination: %w", err)
	}
	if err := m.fs.Remove(src); err != nil {
		return fmt.Errorf("remove source after copy: %w", err)
	}
	return nil
}

// FinalizeDest returns a collision-free path for filename inside dir. If
// dir/filename is taken, numeric disambiguators " (1)", " (2)", ... are
// inserted before the extension until an unused name is found. The function
// only reads the filesystem; call it immediately before the move to keep
// the race window small.
func (m *Mover) FinalizeDest(dir, filename string) string {
	dest := filepath.Join(dir, filename)
	if !m.exists(dest) {
		return dest
	}
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	for i := 1; ; i++ {
		cand := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, i, ext))
		if !m.exists(cand) {
			return cand
		}
	}
}

// exists treats stat errors as "not present"; the subsequent move surfaces
// any real problem.
func (m *Mover) exists(path string) bool {
	ok, err := afero.Exists(m.fs, path)
	return err == nil && ok
}
