package opstate_test

import (
	"testing"

	"voicesort/pkg/opstate"
	"voicesort/pkg/protocol"
)

func rec(id int64, action, opID, from, to string) protocol.HistoryRecord {
	return protocol.HistoryRecord{
		ID:     id,
		Action: action,
		Payload: protocol.Payload{
			OpID: opID,
			Kind: action,
			From: from,
			To:   to,
		},
	}
}

func TestBuildSingleOp(t *testing.T) {
	ops := opstate.Build([]protocol.HistoryRecord{
		rec(1, protocol.ActionMove, "op-a", "/in/a.wav", "/out/K/a.wav"),
	})
	op, ok := ops["op-a"]
	if !ok {
		t.Fatal("op-a missing")
	}
	if op.State != opstate.Applied {
		t.Errorf("state = %v, want applied", op.State)
	}
	if op.Origin != "/in/a.wav" || op.ConfirmedDest != "/out/K/a.wav" {
		t.Errorf("origin/dest = %q / %q", op.Origin, op.ConfirmedDest)
	}
	if op.CurrentPath != "/out/K/a.wav" {
		t.Errorf("current = %q", op.CurrentPath)
	}
}

func TestBuildUndoRedoToggles(t *testing.T) {
	ops := opstate.Build([]protocol.HistoryRecord{
		rec(1, protocol.ActionMove, "op-a", "/in/a.wav", "/out/K/a.wav"),
		rec(2, protocol.ActionUndo, "op-a", "/out/K/a.wav", "/in/a.wav"),
		rec(3, protocol.ActionRedo, "op-a", "/in/a.wav", "/out/K/a.wav"),
		rec(4, protocol.ActionUndo, "op-a", "/out/K/a.wav", "/in/a.wav"),
	})
	op := ops["op-a"]
	if op.State != opstate.Undone {
		t.Errorf("state = %v, want undone", op.State)
	}
	if op.CurrentPath != "/in/a.wav" {
		t.Errorf("current = %q, want origin", op.CurrentPath)
	}
	if op.LastSeq != 4 {
		t.Errorf("last seq = %d, want 4", op.LastSeq)
	}
}

func TestBuildIgnoresUnknownOpIDs(t *testing.T) {
	ops := opstate.Build([]protocol.HistoryRecord{
		rec(1, protocol.ActionUndo, "ghost", "/x", "/y"),
		rec(2, protocol.ActionRedo, "ghost", "/y", "/x"),
	})
	if len(ops) != 0 {
		t.Errorf("ops = %v, want empty", ops)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	records := []protocol.HistoryRecord{
		rec(1, protocol.ActionMove, "a", "/in/a.wav", "/out/A/a.wav"),
		rec(2, protocol.ActionExclude, "b", "/in/b.wav", "/in/_x/b.wav"),
		rec(3, protocol.ActionUndo, "a", "/out/A/a.wav", "/in/a.wav"),
	}
	first := opstate.Build(records)
	second := opstate.Build(records)
	if len(first) != len(second) {
		t.Fatalf("sizes differ: %d vs %d", len(first), len(second))
	}
	for id, op := range first {
		other := second[id]
		if other == nil || *op != *other {
			t.Errorf("op %s differs between replays: %+v vs %+v", id, op, other)
		}
	}
}

func TestLatestPicksMostRecentInState(t *testing.T) {
	ops := opstate.Build([]protocol.HistoryRecord{
		rec(1, protocol.ActionMove, "a", "/in/a.wav", "/out/A/a.wav"),
		rec(2, protocol.ActionMove, "b", "/in/b.wav", "/out/B/b.wav"),
		rec(3, protocol.ActionUndo, "b", "/out/B/b.wav", "/in/b.wav"),
	})

	// b was undone, so a is the latest applied op.
	if got := opstate.Latest(ops, opstate.Applied); got == nil || got.ID != "a" {
		t.Errorf("latest applied = %+v, want a", got)
	}
	if got := opstate.Latest(ops, opstate.Undone); got == nil || got.ID != "b" {
		t.Errorf("latest undone = %+v, want b", got)
	}
}

func TestLatestRedoMakesOpNewestAgain(t *testing.T) {
	ops := opstate.Build([]protocol.HistoryRecord{
		rec(1, protocol.ActionMove, "a", "/in/a.wav", "/out/A/a.wav"),
		rec(2, protocol.ActionMove, "b", "/in/b.wav", "/out/B/b.wav"),
		rec(3, protocol.ActionUndo, "a", "/out/A/a.wav", "/in/a.wav"),
		rec(4, protocol.ActionRedo, "a", "/in/a.wav", "/out/A/a.wav"),
	})

	// The redo of a outranks b's original confirmation.
	if got := opstate.Latest(ops, opstate.Applied); got == nil || got.ID != "a" {
		t.Errorf("latest applied = %+v, want a", got)
	}
}

func TestLatestEmpty(t *testing.T) {
	if got := opstate.Latest(nil, opstate.Applied); got != nil {
		t.Errorf("latest of empty = %+v, want nil", got)
	}
}
