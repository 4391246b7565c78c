package gocrdt

import (
	"cmp"

	"github.com/shamaton/msgpack/v2"
)

// This file wires every value type to a self-describing byte stream via
// msgpack (github.com/shamaton/msgpack/v2), so operations can be sent over
// a transport and logs can be persisted and replayed, per the library's
// external-interface contract. Tree and State hold unexported indexes, so
// each gets an exported snapshot type that msgpack encodes/decodes
// directly; Marshal/Unmarshal helpers convert to and from the live type.

// MarshalTimestamp encodes ts as msgpack bytes.
func MarshalTimestamp[A cmp.Ordered](ts Timestamp[A]) ([]byte, error) {
	return msgpack.Marshal(ts)
}

// UnmarshalTimestamp decodes msgpack bytes produced by MarshalTimestamp.
func UnmarshalTimestamp[A cmp.Ordered](data []byte) (Timestamp[A], error) {
	var ts Timestamp[A]
	err := msgpack.Unmarshal(data, &ts)
	return ts, err
}

// MarshalOp encodes op as msgpack bytes.
func MarshalOp[ID comparable, M comparable, A cmp.Ordered](op Op[ID, M, A]) ([]byte, error) {
	return msgpack.Marshal(op)
}

// UnmarshalOp decodes msgpack bytes produced by MarshalOp.
func UnmarshalOp[ID comparable, M comparable, A cmp.Ordered](data []byte) (Op[ID, M, A], error) {
	var op Op[ID, M, A]
	err := msgpack.Unmarshal(data, &op)
	return op, err
}

// MarshalLoggedOp encodes logged as msgpack bytes.
func MarshalLoggedOp[ID comparable, M comparable, A cmp.Ordered](logged LoggedOp[ID, M, A]) ([]byte, error) {
	return msgpack.Marshal(logged)
}

// UnmarshalLoggedOp decodes msgpack bytes produced by MarshalLoggedOp.
func UnmarshalLoggedOp[ID comparable, M comparable, A cmp.Ordered](data []byte) (LoggedOp[ID, M, A], error) {
	var logged LoggedOp[ID, M, A]
	err := msgpack.Unmarshal(data, &logged)
	return logged, err
}

// TreeTriple is the wire form of a single Tree entry.
type TreeTriple[ID comparable, M comparable] struct {
	ChildID  ID
	ParentID ID
	Metadata M
}

// TreeSnapshot is the self-describing, serializable form of a Tree: the
// full set of triples, in no particular order.
type TreeSnapshot[ID comparable, M comparable] struct {
	Triples []TreeTriple[ID, M]
}

// Snapshot captures t's current triples for serialization.
func (t *Tree[ID, M]) Snapshot() TreeSnapshot[ID, M] {
	triples := make([]TreeTriple[ID, M], 0, len(t.triples))
	for child, node := range t.triples {
		triples = append(triples, TreeTriple[ID, M]{ChildID: child, ParentID: node.ParentID, Metadata: node.Metadata})
	}
	return TreeSnapshot[ID, M]{Triples: triples}
}

// TreeFromSnapshot rebuilds a Tree (including its parent-to-children
// index) from a previously captured TreeSnapshot.
func TreeFromSnapshot[ID comparable, M comparable](snap TreeSnapshot[ID, M]) *Tree[ID, M] {
	t := NewTree[ID, M]()
	for _, triple := range snap.Triples {
		t.AddNode(triple.ChildID, TreeNode[ID, M]{ParentID: triple.ParentID, Metadata: triple.Metadata})
	}
	return t
}

// MarshalTree encodes t as msgpack bytes via its TreeSnapshot.
func MarshalTree[ID comparable, M comparable](t *Tree[ID, M]) ([]byte, error) {
	return msgpack.Marshal(t.Snapshot())
}

// UnmarshalTree decodes msgpack bytes produced by MarshalTree into a Tree.
func UnmarshalTree[ID comparable, M comparable](data []byte) (*Tree[ID, M], error) {
	var snap TreeSnapshot[ID, M]
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return TreeFromSnapshot(snap), nil
}

// StateSnapshot is the self-describing, serializable form of a State: its
// log (already in descending timestamp order) plus a TreeSnapshot of its
// tree.
type StateSnapshot[ID comparable, M comparable, A cmp.Ordered] struct {
	Log  []LoggedOp[ID, M, A]
	Tree TreeSnapshot[ID, M]
}

// Snapshot captures s's current log and tree for serialization.
func (s *State[ID, M, A]) Snapshot() StateSnapshot[ID, M, A] {
	log := make([]LoggedOp[ID, M, A], len(s.log))
	copy(log, s.log)
	return StateSnapshot[ID, M, A]{Log: log, Tree: s.tree.Snapshot()}
}

// StateFromSnapshot rebuilds a State from a previously captured
// StateSnapshot, useful for restoring persisted state or replaying a log
// shipped by a peer.
func StateFromSnapshot[ID comparable, M comparable, A cmp.Ordered](snap StateSnapshot[ID, M, A]) *State[ID, M, A] {
	log := make([]LoggedOp[ID, M, A], len(snap.Log))
	copy(log, snap.Log)
	return &State[ID, M, A]{log: log, tree: TreeFromSnapshot(snap.Tree)}
}

// MarshalState encodes s as msgpack bytes via its StateSnapshot.
func MarshalState[ID comparable, M comparable, A cmp.Ordered](s *State[ID, M, A]) ([]byte, error) {
	return msgpack.Marshal(s.Snapshot())
}

// UnmarshalState decodes msgpack bytes produced by MarshalState into a
// State.
func UnmarshalState[ID comparable, M comparable, A cmp.Ordered](data []byte) (*State[ID, M, A], error) {
	var snap StateSnapshot[ID, M, A]
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return StateFromSnapshot(snap), nil
}
