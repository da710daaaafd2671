package engine

import "errors"

// User input and state errors. These reject the requested action without
// touching the filesystem or the logs.
var (
	// ErrNameRequired rejects a confirm with an empty character name.
	ErrNameRequired = errors.New("character name required")

	// ErrNoOutputDir rejects a confirm before an output directory is set.
	ErrNoOutputDir = errors.New("no output directory set")

	// ErrNoCurrentFile signals an empty working queue.
	ErrNoCurrentFile = errors.New("no current file")

	// ErrNothingToUndo means no operation is currently applied.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo means no operation is currently undone.
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrMissingFile is a consistency error: the file an undo/redo targets
	// is no longer at its reconstructed current path. The engine cannot
	// resolve this safely; the operator must intervene.
	ErrMissingFile = errors.New("file missing from its recorded location")
)
