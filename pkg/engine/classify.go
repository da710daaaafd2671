package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"voicesort/pkg/hasher"
	"voicesort/pkg/logger"
	"voicesort/pkg/protocol"
)

// ConfirmMove classifies the current file under the given character name:
// it moves the file to <output>/<sanitized name>/ with collision-free
// naming, then appends one history record and one audit record under a
// fresh operation id. It returns the destination path.
func (e *Engine) ConfirmMove(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	if e.outputDir == "" {
		return "", ErrNoOutputDir
	}
	src, ok := e.Current()
	if !ok {
		return "", ErrNoCurrentFile
	}

	folder := protocol.SafeName(name)
	destDir := filepath.Join(e.outputDir, folder)
	if err := e.fs.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create character dir: %w", err)
	}

	dest, err := e.applyOperation(ctx, protocol.ActionMove, src, destDir, name, folder)
	if err != nil {
		return "", err
	}
	return dest, e.advance(ctx)
}

// ExcludeCurrent moves the current file into the reserved exclude staging
// folder next to it and logs the operation.
func (e *Engine) ExcludeCurrent(ctx context.Context) (string, error) {
	return e.stageCurrent(ctx, protocol.ActionExclude, protocol.ExcludeDirName)
}

// DeferCurrent moves the current file into the reserved defer staging
// folder next to it; the restorer brings it back once the queue empties.
func (e *Engine) DeferCurrent(ctx context.Context) (string, error) {
	return e.stageCurrent(ctx, protocol.ActionDefer, protocol.DeferDirName)
}

// stageCurrent is the shared exclude/defer path: the staging folder is
// created locally, as a direct child of the file's current directory.
func (e *Engine) stageCurrent(ctx context.Context, action, stagingName string) (string, error) {
	src, ok := e.Current()
	if !ok {
		return "", ErrNoCurrentFile
	}

	stagingDir := filepath.Join(filepath.Dir(src), stagingName)
	if err := e.fs.MkdirAll(stagingDir, 0o755); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}

	dest, err := e.applyOperation(ctx, action, src, stagingDir, "", "")
	if err != nil {
		return "", err
	}
	return dest, e.advance(ctx)
}

// applyOperation performs the confirmed classification: collision-free
// destination, checksum, move, then the history and audit appends. The
// move happens first; if it fails nothing is logged, so a logged operation
// always corresponds to a completed move. A history append failure after a
// successful move is surfaced as a fatal inconsistency, since a move
// without a log record cannot be undone.
func (e *Engine) applyOperation(ctx context.Context, action, src, destDir, character, folder string) (string, error) {
	dest := e.mv.FinalizeDest(destDir, filepath.Base(src))

	sum, err := hasher.SumFile(e.fs, src)
	if err != nil {
		logger.Get().Debug().Str("src", src).Err(err).Msg("checksum skipped")
		sum = ""
	}

	if err := e.mv.Move(src, dest); err != nil {
		return "", err
	}

	opID := uuid.New().String()
	if _, err := e.store.AppendHistory(ctx, action, protocol.Payload{
		OpID: opID,
		Kind: action,
		From: src,
		To:   dest,
	}); err != nil {
		logger.Get().Error().Str("op_id", opID).Str("src", src).Str("dst", dest).
			Err(err).Msg("file moved but history append failed; operation is not undoable")
		return "", fmt.Errorf("inconsistent state: moved %s but history append failed: %w", src, err)
	}

	if err := e.store.AppendAudit(ctx, protocol.AuditRecord{
		Op:        action,
		Src:       src,
		Dst:       dest,
		Character: character,
		Folder:    folder,
		Checksum:  sum,
	}); err != nil {
		// The audit log has an independent lifecycle; the operation itself
		// is durable in history, so report and carry on.
		logger.Get().Error().Str("op_id", opID).Err(err).Msg("audit append failed")
	}

	logger.Get().Info().Str("op", action).Str("src", src).Str("dst", dest).Msg("classified")
	return dest, nil
}

// advance drops the current file from the queue and, when the queue runs
// dry, pulls deferred files back in and rescans.
func (e *Engine) advance(ctx context.Context) error {
	if e.index >= 0 && e.index < len(e.queue) {
		e.queue = append(e.queue[:e.index], e.queue[e.index+1:]...)
	}
	if e.index >= len(e.queue) {
		e.index = len(e.queue) - 1
	}
	if len(e.queue) > 0 {
		return nil
	}

	roots, err := e.store.Inputs(ctx)
	if err != nil {
		return fmt.Errorf("load inputs: %w", err)
	}
	if e.restoreDeferred(ctx, roots) {
		return e.LoadFiles(ctx)
	}
	return nil
}
