// Package treeutil provides small helpers for applications embedding
// gocrdt's tree CRDT — identifier allocation and well-known IDs — that sit
// outside the core algorithm by design. The core is generic over any
// comparable ID type; nothing in it depends on IDs actually being UUIDs.
package treeutil

import "github.com/google/uuid"

// NewID mints a fresh, globally unique node identifier. Creating a node in
// the tree CRDT is simply moving a fresh ID into place, so this is the
// typical way an application obtains the ChildID for a create operation.
func NewID() uuid.UUID {
	return uuid.New()
}

// Root is the conventional "virtual root" ID: the implicit parent of
// every top-level node in the forest. It is the zero value of uuid.UUID,
// matching the generic convention that the ID type's zero value plays
// this role.
var Root uuid.UUID

// Trash is a well-known ID applications can move nodes under to express
// deletion. It is distinct from Root and from any ID NewID can return
// (NewID never generates the all-ones UUID).
var Trash = uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")
