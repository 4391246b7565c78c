package gocrdt

import "cmp"

// State holds a Tree CRDT's log and the Tree it produces, and implements
// the core do/undo/redo/apply algorithm. State is not tied to any
// actor/peer — two replicas that have applied the same set of operations
// converge to equal States regardless of arrival order. Replica is the
// higher-level, actor-bound interface; most callers should use that
// instead of State directly.
//
// The log is kept in strictly descending timestamp order (newest first)
// after every ApplyOp; its only purpose is enabling undo/redo for
// out-of-order arrivals, not serving as a general audit trail.
type State[ID comparable, M comparable, A cmp.Ordered] struct {
	log  []LoggedOp[ID, M, A]
	tree *Tree[ID, M]
}

// NewState returns an empty State: no log entries, an empty Tree.
func NewState[ID comparable, M comparable, A cmp.Ordered]() *State[ID, M, A] {
	return &State[ID, M, A]{tree: NewTree[ID, M]()}
}

// Tree returns the current tree.
func (s *State[ID, M, A]) Tree() *Tree[ID, M] {
	return s.tree
}

// Log returns the log in descending timestamp order. The returned slice is
// owned by State; callers must not mutate it.
func (s *State[ID, M, A]) Log() []LoggedOp[ID, M, A] {
	return s.log
}

// Equal reports whether s and other have the same log (same operations, in
// the same order) and the same tree.
func (s *State[ID, M, A]) Equal(other *State[ID, M, A]) bool {
	if len(s.log) != len(other.log) {
		return false
	}
	for i := range s.log {
		a, b := s.log[i], other.log[i]
		if !a.Op.Timestamp.Equal(b.Op.Timestamp) ||
			a.Op.ParentID != b.Op.ParentID || a.Op.Metadata != b.Op.Metadata || a.Op.ChildID != b.Op.ChildID {
			return false
		}
		switch {
		case a.OldParent == nil && b.OldParent == nil:
		case a.OldParent == nil || b.OldParent == nil:
			return false
		case *a.OldParent != *b.OldParent:
			return false
		}
	}
	return s.tree.Equal(other.tree)
}

// DoOp performs the work of applying a single move operation to the
// current tree and returns the LoggedOp that records it.
//
// It first reads c's current (parent, metadata), which becomes the
// returned LoggedOp's OldParent. If c == p, or p's ancestry already
// includes c (moving c under p would create a cycle), the tree is left
// unchanged — the cycle guard — but the LoggedOp is still returned and
// still carries op and OldParent faithfully, so replaying it later
// (via UndoOp/RedoOp) produces identical results on every replica.
// Otherwise c is removed from wherever it currently is and the triple
// (p, op.Metadata, c) is added.
func (s *State[ID, M, A]) DoOp(op Op[ID, M, A]) LoggedOp[ID, M, A] {
	var oldParent *TreeNode[ID, M]
	if n, ok := s.tree.Find(op.ChildID); ok {
		cp := n
		oldParent = &cp
	}

	if op.ChildID == op.ParentID || s.tree.IsAncestor(op.ParentID, op.ChildID) {
		return NewLoggedOp(op, oldParent)
	}

	s.tree.RmChild(op.ChildID)
	s.tree.AddNode(op.ChildID, TreeNode[ID, M]{ParentID: op.ParentID, Metadata: op.Metadata})
	return NewLoggedOp(op, oldParent)
}

// UndoOp exactly reverts the effect of a prior DoOp: it removes the
// child from the tree, then — if OldParent is present — re-adds the
// child under its old parent with its old metadata. If OldParent is
// absent, the child is simply left out of the tree.
//
// When logged is the result of a cycle-guard no-op, this is a no-op too:
// OldParent equals the state the tree was already in, so removing and
// re-adding the child restores exactly what was there.
func (s *State[ID, M, A]) UndoOp(logged LoggedOp[ID, M, A]) {
	s.tree.RmChild(logged.ChildID())
	if logged.OldParent != nil {
		s.tree.AddNode(logged.ChildID(), *logged.OldParent)
	}
}

// RedoOp re-extracts the original Op from logged and re-applies it via
// DoOp, which recomputes OldParent against whatever the tree looks like
// now (possibly different from when logged was first produced), and
// prepends the freshly computed LoggedOp onto the log.
func (s *State[ID, M, A]) RedoOp(logged LoggedOp[ID, M, A]) {
	recomputed := s.DoOp(logged.Op)
	s.log = append([]LoggedOp[ID, M, A]{recomputed}, s.log...)
}

// ApplyOp is the state machine described by the algorithm: it inserts op
// into the log at the chronological position its timestamp dictates,
// undoing and redoing any log entries that are newer than op in the
// process, so that the net effect of applying any set of operations is
// independent of the order they arrive in.
//
// This is an iterative rewrite of the recursive depiction in the
// algorithm: newer-than-op log entries are popped and undone onto a
// stack, op is then inserted (or, if its timestamp collides with an
// entry still at the head of the log, dropped as ErrDuplicateTimestamp),
// and finally the stack is unwound, redoing each entry — which pushes a
// freshly recomputed LoggedOp back onto the log for it. Recursion depth
// would otherwise be bounded by the log length, which could be
// arbitrarily large for pathological out-of-order arrival patterns.
func (s *State[ID, M, A]) ApplyOp(op Op[ID, M, A]) error {
	var undone []LoggedOp[ID, M, A]

	for len(s.log) > 0 && op.Timestamp.Compare(s.log[0].Timestamp()) < 0 {
		head := s.log[0]
		s.log = s.log[1:]
		s.UndoOp(head)
		undone = append(undone, head)
	}

	var err error
	if len(s.log) > 0 && op.Timestamp.Compare(s.log[0].Timestamp()) == 0 {
		logger.Warn().
			Msg("op with timestamp equal to head of log ignored; every op must have a unique timestamp")
		err = ErrDuplicateTimestamp
	} else {
		logged := s.DoOp(op)
		s.log = append([]LoggedOp[ID, M, A]{logged}, s.log...)
	}

	for i := len(undone) - 1; i >= 0; i-- {
		s.RedoOp(undone[i])
	}

	return err
}

// ApplyOps applies ops in order. It stops and returns the first non-
// duplicate error encountered; a duplicate-timestamp op is dropped and
// application continues with the rest, matching ApplyOp's own policy.
func (s *State[ID, M, A]) ApplyOps(ops []Op[ID, M, A]) error {
	for _, op := range ops {
		if err := s.ApplyOp(op); err != nil && err != ErrDuplicateTimestamp {
			return err
		}
	}
	return nil
}

// TruncateLogBefore removes every log entry whose timestamp is strictly
// less than threshold, and reports whether anything was removed. This is
// safe only once threshold is a causally stable bound (see
// Replica.CausallyStableThreshold): after truncation, undo/redo can no
// longer reorder operations older than threshold, which holds precisely
// because no such operation can still arrive.
func (s *State[ID, M, A]) TruncateLogBefore(threshold Timestamp[A]) bool {
	keep := len(s.log)
	for keep > 0 && s.log[keep-1].Timestamp().Compare(threshold) < 0 {
		keep--
	}
	changed := keep < len(s.log)
	s.log = s.log[:keep]
	return changed
}
