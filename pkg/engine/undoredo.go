package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"voicesort/pkg/logger"
	"voicesort/pkg/opstate"
	"voicesort/pkg/protocol"
)

// Undo reverses the most recently applied operation: the file moves back to
// a collision-free name in its origin directory, an undo record is
// appended, and the queue is rebuilt with the cursor on the restored file.
// The returned path is where the file now sits.
func (e *Engine) Undo(ctx context.Context) (string, error) {
	cand, err := e.pick(ctx, opstate.Applied)
	if err != nil {
		return "", err
	}
	if cand == nil {
		return "", ErrNothingToUndo
	}

	target := e.mv.FinalizeDest(filepath.Dir(cand.Origin), filepath.Base(cand.Origin))
	moved, err := e.compensate(ctx, protocol.ActionUndo, protocol.ActionUndoError, cand, target)
	if err != nil {
		return "", err
	}
	return moved, nil
}

// Redo re-applies the most recently undone operation, moving the file to a
// collision-free name in its originally confirmed destination directory.
func (e *Engine) Redo(ctx context.Context) (string, error) {
	cand, err := e.pick(ctx, opstate.Undone)
	if err != nil {
		return "", err
	}
	if cand == nil {
		return "", ErrNothingToRedo
	}

	dest := cand.ConfirmedDest
	target := e.mv.FinalizeDest(filepath.Dir(dest), filepath.Base(dest))
	moved, err := e.compensate(ctx, protocol.ActionRedo, protocol.ActionRedoError, cand, target)
	if err != nil {
		return "", err
	}
	return moved, nil
}

// pick rebuilds operation state from the full history and selects the
// operation in the wanted state with the greatest last sequence id.
func (e *Engine) pick(ctx context.Context, state opstate.State) (*opstate.Op, error) {
	records, err := e.store.History(ctx)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return opstate.Latest(opstate.Build(records), state), nil
}

// compensate performs the shared undo/redo tail: verify the file is where
// the log says, move it, append exactly one compensating record, rescan,
// and park the cursor on the moved file. Either the move succeeds and one
// record is appended, or the move fails and the reconstruction input is
// unchanged (failure diagnostics carry no op-state transition).
func (e *Engine) compensate(ctx context.Context, action, errAction string, op *opstate.Op, target string) (string, error) {
	current := op.CurrentPath
	if ok, err := afero.Exists(e.fs, current); err != nil || !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingFile, current)
	}

	if err := e.mv.Move(current, target); err != nil {
		if _, logErr := e.store.AppendHistory(ctx, errAction, protocol.Payload{
			OpID:  op.ID,
			Error: err.Error(),
		}); logErr != nil {
			logger.Get().Error().Err(logErr).Msg("record compensation failure")
		}
		return "", err
	}

	if _, err := e.store.AppendHistory(ctx, action, protocol.Payload{
		OpID: op.ID,
		Kind: op.Kind,
		From: current,
		To:   target,
	}); err != nil {
		logger.Get().Error().Str("op_id", op.ID).Err(err).
			Msg("file moved but compensating record append failed")
		return "", fmt.Errorf("inconsistent state: moved %s but %s append failed: %w", current, action, err)
	}

	logger.Get().Info().Str("action", action).Str("op_id", op.ID).
		Str("from", current).Str("to", target).Msg("compensated")

	if err := e.LoadFiles(ctx); err != nil {
		return "", err
	}
	e.GotoFile(target)
	return target, nil
}
