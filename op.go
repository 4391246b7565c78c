package gocrdt

import "cmp"

// Op is the sole mutation primitive: an immutable record of moving ChildID
// to be a child of ParentID, with Metadata attached to that parent-child
// relationship. Op does not record the child's previous location; applying
// it simply removes the child from wherever it currently is and reattaches
// it under ParentID (see LoggedOp, which records the pre-image for undo).
//
// A node is created by moving a fresh ChildID into the tree; it is deleted
// by moving it under an application-chosen "trash" ID. Renaming a node
// without moving it is a move with the same ParentID and new Metadata — the
// filesystem-inspired convention is ChildID as inode and Metadata as
// filename.
//
// Timestamp.Equal across two distinct Ops is a protocol violation: every
// operation's timestamp must be globally unique.
type Op[ID comparable, M comparable, A cmp.Ordered] struct {
	Timestamp Timestamp[A]
	ParentID  ID
	Metadata  M
	ChildID   ID
}

// NewOp builds an Op from its four fields.
func NewOp[ID comparable, M comparable, A cmp.Ordered](ts Timestamp[A], parentID ID, metadata M, childID ID) Op[ID, M, A] {
	return Op[ID, M, A]{
		Timestamp: ts,
		ParentID:  parentID,
		Metadata:  metadata,
		ChildID:   childID,
	}
}

// Move is an unstamped (parent, metadata, child) tuple, used to describe a
// batch of moves to Replica.OpMoves before timestamps are minted.
type Move[ID comparable, M comparable] struct {
	ParentID ID
	Metadata M
	ChildID  ID
}
