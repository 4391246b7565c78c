// Package gocrdt provides a suite of Conflict-free Replicated Data Types (CRDTs).
//
// CRDTs are distributed data structures that guarantee convergence: if multiple
// replicas receive the same set of updates, they will eventually reach the
// same state regardless of the order in which updates were processed.
//
// This package implements a move-tree CRDT: a replicated forest of rooted
// trees whose only mutation primitive is a move of a child node under a new
// parent, carrying application-opaque metadata. Creation and deletion are
// expressed as moves rather than as distinct operations — moving a fresh ID
// into the tree creates it, moving a node under an application-designated
// "trash" ID deletes it. The algorithm follows Kleppmann et al., "A
// highly-available move operation for replicated trees and distributed
// filesystems" (https://martin.kleppmann.com/papers/move-op.pdf).
//
// The core types, named to match the paper and the earlier Rust reference
// implementation, are:
//
//   - Timestamp: a Lamport clock value paired with an actor, totally ordered.
//   - Op: an immutable move operation (timestamp, parent, metadata, child).
//   - LoggedOp: an Op plus the pre-image of the child's prior parent, making
//     the op losslessly invertible.
//   - Tree: the set of (parent, metadata, child) triples that is the current
//     tree state.
//   - State: the log (in descending timestamp order) plus the Tree it
//     produces, implementing apply/undo/redo.
//   - Replica: a single actor's view — local Lamport clock, per-actor
//     latest-seen table, and State — used to mint and apply operations.
package gocrdt
