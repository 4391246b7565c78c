package gocrdt

import "cmp"

// Replica owns one actor's local Lamport clock, its per-actor latest-seen
// table, and the State it mutates. It is the library's primary entry
// point: local edits are minted here (OpMove/OpMoves) and both local and
// remote operations are applied here (ApplyOp/ApplyOps), which keeps the
// clock and latest-seen table in sync with every op that reaches State.
//
// Replica is single-threaded: it owns its State exclusively and expects
// external serialization (a single owning goroutine, or a mutex) if it's
// ever shared. Op and LoggedOp values, in contrast, are immutable and may
// be freely passed between goroutines.
type Replica[ID comparable, M comparable, A cmp.Ordered] struct {
	state      *State[ID, M, A]
	clock      Timestamp[A]
	latestSeen map[A]Timestamp[A]
}

// NewReplica returns a Replica for the given actor, with an empty State
// and a clock starting at counter 0.
func NewReplica[ID comparable, M comparable, A cmp.Ordered](actor A) *Replica[ID, M, A] {
	return &Replica[ID, M, A]{
		state:      NewState[ID, M, A](),
		clock:      Timestamp[A]{Actor: actor},
		latestSeen: make(map[A]Timestamp[A]),
	}
}

// ID returns this replica's actor ID.
func (r *Replica[ID, M, A]) ID() A {
	return r.clock.Actor
}

// Clock returns the replica's current Lamport clock value.
func (r *Replica[ID, M, A]) Clock() Timestamp[A] {
	return r.clock
}

// State returns the replica's State.
func (r *Replica[ID, M, A]) State() *State[ID, M, A] {
	return r.state
}

// Tree returns the replica's current tree.
func (r *Replica[ID, M, A]) Tree() *Tree[ID, M] {
	return r.state.Tree()
}

// TreeMut returns a mutable reference to the replica's tree.
//
// This is dangerous: normally the tree should only ever be mutated via
// ApplyOp, never directly. The one sanctioned use is administrative
// reclamation of a deleted subtree via Tree.RmSubtree, and only after
// TruncateLog has confirmed the relevant history is causally stable —
// see RmSubtree's own warning.
func (r *Replica[ID, M, A]) TreeMut() *Tree[ID, M] {
	return r.state.Tree()
}

// OpMove mints a single Op moving child under parent with metadata,
// stamped with the next tick of the replica's clock. It does not mutate
// the replica's clock — the clock only advances when the op is actually
// applied via ApplyOp. Minting several Ops this way before applying any
// of them will produce Ops that all share the same timestamp, only one of
// which can be successfully applied; use OpMoves to mint a whole batch at
// once instead.
func (r *Replica[ID, M, A]) OpMove(parent ID, metadata M, child ID) Op[ID, M, A] {
	return NewOp(r.clock.Tick(), parent, metadata, child)
}

// OpMoves mints a batch of Ops from moves, ticking a local clone of the
// clock for each one so that every Op in the batch gets a strictly
// increasing timestamp — and is therefore guaranteed conflict-free within
// the batch itself. Like OpMove, it does not mutate the replica's clock.
func (r *Replica[ID, M, A]) OpMoves(moves []Move[ID, M]) []Op[ID, M, A] {
	t := r.clock
	ops := make([]Op[ID, M, A], 0, len(moves))
	for _, mv := range moves {
		t = t.Tick()
		ops = append(ops, NewOp(t, mv.ParentID, mv.Metadata, mv.ChildID))
	}
	return ops
}

// ApplyOp merges op's timestamp into the replica's clock, updates the
// latest-seen table for op's actor, and delegates to State.ApplyOp.
//
// The clock merge keeps the replica's own actor identity but advances its
// counter to at least op's counter, so that any subsequent locally-minted
// op is guaranteed to sort after every op the replica has seen so far.
// The latest-seen update only ever moves forward for a given actor: an op
// with a timestamp no greater than what's already recorded for that actor
// leaves the table unchanged.
func (r *Replica[ID, M, A]) ApplyOp(op Op[ID, M, A]) error {
	r.clock = r.clock.Merge(op.Timestamp)

	actor := op.Timestamp.Actor
	if latest, ok := r.latestSeen[actor]; !ok || latest.Less(op.Timestamp) {
		r.latestSeen[actor] = op.Timestamp
	}

	return r.state.ApplyOp(op)
}

// ApplyOps applies ops one at a time, in order. Order matters for
// correctness here: the clock and latest-seen table must observe the ops
// in the given sequence, not just the final state's set membership.
func (r *Replica[ID, M, A]) ApplyOps(ops []Op[ID, M, A]) error {
	for _, op := range ops {
		if err := r.ApplyOp(op); err != nil && err != ErrDuplicateTimestamp {
			return err
		}
	}
	return nil
}

// ApplyLogOp applies the Op embedded in a LoggedOp, useful for replaying a
// persisted log (LoggedOp.OldParent is recomputed by DoOp, not trusted
// from the replayed record).
func (r *Replica[ID, M, A]) ApplyLogOp(logged LoggedOp[ID, M, A]) error {
	return r.ApplyOp(logged.Op)
}

// ApplyLogOps replays a list of LoggedOps in order.
func (r *Replica[ID, M, A]) ApplyLogOps(logged []LoggedOp[ID, M, A]) error {
	for _, l := range logged {
		if err := r.ApplyLogOp(l); err != nil && err != ErrDuplicateTimestamp {
			return err
		}
	}
	return nil
}

// CausallyStableThreshold returns the greatest timestamp guaranteed to be
// causally stable — the minimum across every actor's entry in the
// latest-seen table — and false if the table is empty (nothing applied
// yet, so no threshold can be computed).
//
// This is only sound when latest-seen has an entry for every replica in
// the system; membership is assumed to be supplied externally (e.g. by
// the transport), since the core does not discover peers itself.
func (r *Replica[ID, M, A]) CausallyStableThreshold() (Timestamp[A], bool) {
	var min Timestamp[A]
	found := false
	for _, ts := range r.latestSeen {
		if !found || ts.Compare(min) < 0 {
			min = ts
			found = true
		}
	}
	return min, found
}

// TruncateLog computes the causally stable threshold and removes every
// log entry older than it, reporting whether anything was removed. With
// no threshold available (latest-seen is empty), it changes nothing and
// returns false.
func (r *Replica[ID, M, A]) TruncateLog() bool {
	threshold, ok := r.CausallyStableThreshold()
	if !ok {
		return false
	}
	return r.state.TruncateLogBefore(threshold)
}
