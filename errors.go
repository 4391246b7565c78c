package gocrdt

import "errors"

// ErrDuplicateTimestamp is returned by State.ApplyOp (and, transitively,
// Replica.ApplyOp) when an incoming operation's timestamp collides with the
// timestamp already at the head of the log. Per the algorithm's contract
// every operation's timestamp is globally unique; a collision is a protocol
// violation from the caller, not a condition the CRDT itself can resolve.
// The op is dropped and the state is left unchanged.
var ErrDuplicateTimestamp = errors.New("gocrdt: duplicate timestamp, operation dropped")
