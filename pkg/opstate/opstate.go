// Package opstate reconstructs per-operation applied/undone state by
// replaying the append-only history log. Reconstruction runs fresh on every
// undo/redo request; there is no incrementally maintained table to go
// stale, and replaying the same log twice always yields the same result.
package opstate

import "voicesort/pkg/protocol"

// State is the derived state of one operation.
type State string

// An operation toggles between Applied and Undone; there is no terminal
// state.
const (
	Applied State = "applied"
	Undone  State = "undone"
)

// Op is the reconstructed view of one classification operation.
type Op struct {
	ID string
	// Kind is move, exclude, or defer.
	Kind string
	// Origin is the file's path before the operation was first applied.
	Origin string
	// ConfirmedDest is the destination chosen at first application, after
	// collision avoidance.
	ConfirmedDest string
	State         State
	// CurrentPath is where the file sits under the current state.
	CurrentPath string
	// LastSeq is the sequence id of the record that produced the current
	// state. Undo/redo selection orders by it.
	LastSeq int64
}

// Build replays records (which must be in ascending sequence order) into a
// map keyed by operation id. Undo/redo records referencing unknown ids are
// ignored.
func Build(records []protocol.HistoryRecord) map[string]*Op {
	ops := make(map[string]*Op)
	for _, rec := range records {
		p := rec.Payload
		if p.OpID == "" {
			continue
		}
		switch rec.Action {
		case protocol.ActionMove, protocol.ActionExclude, protocol.ActionDefer:
			op, ok := ops[p.OpID]
			if !ok {
				kind := p.Kind
				if kind == "" {
					kind = rec.Action
				}
				op = &Op{
					ID:            p.OpID,
					Kind:          kind,
					Origin:        p.From,
					ConfirmedDest: p.To,
				}
				ops[p.OpID] = op
			}
			op.State = Applied
			op.CurrentPath = p.To
			op.LastSeq = rec.ID
		case protocol.ActionUndo:
			if op, ok := ops[p.OpID]; ok {
				op.State = Undone
				op.CurrentPath = payloadDest(p)
				op.LastSeq = rec.ID
			}
		case protocol.ActionRedo:
			if op, ok := ops[p.OpID]; ok {
				op.State = Applied
				op.CurrentPath = payloadDest(p)
				op.LastSeq = rec.ID
			}
		}
	}
	return ops
}

// payloadDest prefers the record's destination, falling back to its source
// for defensively tolerated partial payloads.
func payloadDest(p protocol.Payload) string {
	if p.To != "" {
		return p.To
	}
	return p.From
}

// Latest returns the operation in state with the greatest LastSeq, or nil.
// "Most recent" means most recently confirmed, undone, or redone, not most
// recently created: a redo of an old operation makes it newest again.
func Latest(ops map[string]*Op, state State) *Op {
	var best *Op
	for _, op := range ops {
		if op.State != state {
			continue
		}
		if best == nil || op.LastSeq > best.LastSeq {
			best = op
		}
	}
	return best
}
