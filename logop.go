package gocrdt

import "cmp"

// TreeNode is the (parent, metadata) pair a Tree stores for a given child;
// the child itself is the key it's stored under, not a field of TreeNode.
type TreeNode[ID comparable, M comparable] struct {
	ParentID ID
	Metadata M
}

// LoggedOp pairs a Move operation with the pre-image of the child's prior
// (parent, metadata), if the child existed in the tree immediately before
// the move was first applied. The pre-image is what makes a move losslessly
// invertible: UndoOp needs to know where to put the child back.
//
// OldParent is nil when the child did not exist in the tree at the moment
// the op was first done.
type LoggedOp[ID comparable, M comparable, A cmp.Ordered] struct {
	Op        Op[ID, M, A]
	OldParent *TreeNode[ID, M]
}

// NewLoggedOp pairs op with its pre-image oldParent (nil if the child was
// absent from the tree).
func NewLoggedOp[ID comparable, M comparable, A cmp.Ordered](op Op[ID, M, A], oldParent *TreeNode[ID, M]) LoggedOp[ID, M, A] {
	return LoggedOp[ID, M, A]{Op: op, OldParent: oldParent}
}

// Timestamp returns the timestamp of the logged operation's underlying Op.
func (l LoggedOp[ID, M, A]) Timestamp() Timestamp[A] {
	return l.Op.Timestamp
}

// ChildID returns the child ID of the logged operation's underlying Op.
func (l LoggedOp[ID, M, A]) ChildID() ID {
	return l.Op.ChildID
}
