// Package engine is the file-classification operation engine: it owns the
// working queue, performs confirmed move/exclude/defer operations with
// durable history and audit records, and provides persistent undo/redo by
// replaying the history log. The engine is single-writer: one classification
// or undo/redo action is in flight at a time.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/afero"

	"voicesort/pkg/logger"
	"voicesort/pkg/mover"
	"voicesort/pkg/protocol"
	"voicesort/pkg/restore"
	"voicesort/pkg/scanner"
	"voicesort/pkg/store"
)

// Options tunes engine construction. The zero value uses the OS filesystem
// and mover defaults.
type Options struct {
	Fs           afero.Fs
	MoveAttempts int
	MoveBackoff  time.Duration
	SniffAudio   bool
}

// Engine drives one project's classification session.
type Engine struct {
	store      *store.Store
	fs         afero.Fs
	mv         *mover.Mover
	scan       *scanner.Scanner
	rest       *restore.Restorer
	projectKey string

	recursive bool
	outputDir string

	queue []string
	index int
}

// Status is the engine state a UI renders.
type Status struct {
	Position      int // 1-based position of the current file, 0 when empty
	Total         int
	ProjectKey    string
	EnabledInputs int
	Recursive     bool
	OutputDir     string
}

// New creates an Engine over the project store, loading the persisted
// recursive flag and last output directory. An output directory that no
// longer exists is dropped.
func New(ctx context.Context, st *store.Store, projectKey string, opts Options) (*Engine, error) {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	mv := mover.New(fs, mover.Options{Attempts: opts.MoveAttempts, Backoff: opts.MoveBackoff})

	e := &Engine{
		store:      st,
		fs:         fs,
		mv:         mv,
		scan:       scanner.New(fs, scanner.Options{Sniff: opts.SniffAudio}),
		rest:       restore.New(fs, mv),
		projectKey: projectKey,
		index:      -1,
	}

	rec, err := st.GetSetting(ctx, protocol.SettingRecursive, "false")
	if err != nil {
		return nil, fmt.Errorf("load recursive setting: %w", err)
	}
	e.recursive = rec == "true"

	out, err := st.GetSetting(ctx, protocol.SettingLastOutput, "")
	if err != nil {
		return nil, fmt.Errorf("load output setting: %w", err)
	}
	if out != "" {
		if ok, err := afero.DirExists(fs, out); err == nil && ok {
			e.outputDir = out
		}
	}

	if err := st.SetSetting(ctx, protocol.SettingProjectKey, projectKey); err != nil {
		return nil, fmt.Errorf("record project key: %w", err)
	}

	return e, nil
}

// LoadFiles rebuilds the working queue from the filesystem. If the queue
// comes up empty, deferred files are restored and the scan re-runs; the
// loop stops as soon as a restoration pass moves nothing, so an empty
// result means there is genuinely nothing left to classify.
func (e *Engine) LoadFiles(ctx context.Context) error {
	roots, err := e.store.Inputs(ctx)
	if err != nil {
		return fmt.Errorf("load inputs: %w", err)
	}

	queue := e.scan.Scan(roots, e.recursive)
	for len(queue) == 0 {
		restored := e.restoreDeferred(ctx, roots)
		if !restored {
			break
		}
		queue = e.scan.Scan(roots, e.recursive)
	}

	e.queue = queue
	if len(queue) > 0 {
		e.index = 0
	} else {
		e.index = -1
	}
	logger.Get().Debug().Int("files", len(queue)).Bool("recursive", e.recursive).
		Msg("queue rebuilt")
	return nil
}

// restoreDeferred runs one restoration pass and records per-file failures
// as history diagnostics. Failures never abort the pass.
func (e *Engine) restoreDeferred(ctx context.Context, roots []protocol.InputRoot) bool {
	restored, failures := e.rest.Restore(roots, e.recursive)
	for _, f := range failures {
		logger.Get().Warn().Str("src", f.Src).Err(f.Err).Msg("deferred restore failed")
		if _, err := e.store.AppendHistory(ctx, protocol.ActionRestoreDeferredError,
			protocol.Payload{Src: f.Src, Error: f.Err.Error()}); err != nil {
			logger.Get().Error().Err(err).Msg("record restore failure")
		}
	}
	return restored
}

// Queue returns the current working queue.
func (e *Engine) Queue() []string {
	return e.queue
}

// Current returns the file under the cursor, if any.
func (e *Engine) Current() (string, bool) {
	if e.index < 0 || e.index >= len(e.queue) {
		return "", false
	}
	return e.queue[e.index], true
}

// GotoFile places the cursor on path and reports whether it was found in
// the queue.
func (e *Engine) GotoFile(path string) bool {
	for i, p := range e.queue {
		if p == path {
			e.index = i
			return true
		}
	}
	return false
}

// Status summarizes the session for display.
func (e *Engine) Status(ctx context.Context) (Status, error) {
	roots, err := e.store.Inputs(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("load inputs: %w", err)
	}
	enabled := 0
	for _, r := range roots {
		if r.Enabled && !r.Done {
			enabled++
		}
	}
	pos := 0
	if e.index >= 0 {
		pos = e.index + 1
	}
	return Status{
		Position:      pos,
		Total:         len(e.queue),
		ProjectKey:    e.projectKey,
		EnabledInputs: enabled,
		Recursive:     e.recursive,
		OutputDir:     e.outputDir,
	}, nil
}

// Recursive reports the recursive-scan flag.
func (e *Engine) Recursive() bool {
	return e.recursive
}

// OutputDir returns the configured output directory ("" if unset).
func (e *Engine) OutputDir() string {
	return e.outputDir
}

// SetRecursive persists the recursive-scan flag. The caller rescans.
func (e *Engine) SetRecursive(ctx context.Context, recursive bool) error {
	v := "false"
	if recursive {
		v = "true"
	}
	if err := e.store.SetSetting(ctx, protocol.SettingRecursive, v); err != nil {
		return fmt.Errorf("persist recursive: %w", err)
	}
	e.recursive = recursive
	return nil
}

// SetOutputDir persists the output directory used by confirmed moves.
func (e *Engine) SetOutputDir(ctx context.Context, dir string) error {
	if ok, err := afero.DirExists(e.fs, dir); err != nil || !ok {
		return fmt.Errorf("output dir %s: not a directory", dir)
	}
	if err := e.store.SetSetting(ctx, protocol.SettingLastOutput, dir); err != nil {
		return fmt.Errorf("persist output dir: %w", err)
	}
	e.outputDir = dir
	return nil
}

// AddInputRoot registers a new enabled input root.
func (e *Engine) AddInputRoot(ctx context.Context, path string) error {
	if err := e.store.UpsertInput(ctx, path, true, false); err != nil {
		return fmt.Errorf("add input root: %w", err)
	}
	return nil
}

// RemoveInputRoot deletes the root record. Files on disk are untouched.
func (e *Engine) RemoveInputRoot(ctx context.Context, path string) error {
	if err := e.store.RemoveInput(ctx, path); err != nil {
		return fmt.Errorf("remove input root: %w", err)
	}
	return nil
}

// SetEnabled flips whether a root participates in scanning.
func (e *Engine) SetEnabled(ctx context.Context, path string, enabled bool) error {
	if err := e.store.SetInputEnabled(ctx, path, enabled); err != nil {
		return fmt.Errorf("set input enabled: %w", err)
	}
	return nil
}

// SetDone flips a root's done tag; done roots are skipped by scans.
func (e *Engine) SetDone(ctx context.Context, path string, done bool) error {
	if err := e.store.SetInputDone(ctx, path, done); err != nil {
		return fmt.Errorf("set input done: %w", err)
	}
	return nil
}

// InputRoots lists the configured roots in stored order.
func (e *Engine) InputRoots(ctx context.Context) ([]protocol.InputRoot, error) {
	return e.store.Inputs(ctx)
}

// Names returns the project's character name list.
func (e *Engine) Names(ctx context.Context) ([]string, error) {
	return e.store.Names(ctx)
}

// SetNames replaces the project's character name list.
func (e *Engine) SetNames(ctx context.Context, names []string) error {
	return e.store.SetNames(ctx, names)
}

// Store exposes the underlying project store for read-side consumers
// (audit listing, verification).
func (e *Engine) Store() *store.Store {
	return e.store
}
