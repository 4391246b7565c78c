package gocrdt

import (
	"cmp"
	"math"
)

// Timestamp is a Lamport clock value paired with the actor that minted it.
// Timestamps are totally ordered: Counter is compared first, and Actor
// breaks ties, so that no two distinct actors can ever produce an equal
// Timestamp for different operations as long as each actor's Counter never
// repeats a value it has already used.
//
// Timestamp is a value object: every method below returns a new Timestamp
// rather than mutating the receiver.
type Timestamp[A cmp.Ordered] struct {
	Counter uint64
	Actor   A
}

// NewTimestamp builds a Timestamp from an actor and an explicit counter.
func NewTimestamp[A cmp.Ordered](actor A, counter uint64) Timestamp[A] {
	return Timestamp[A]{Counter: counter, Actor: actor}
}

// Compare returns -1, 0, or 1 as t is less than, equal to, or greater than
// other, comparing Counter first and breaking ties on Actor.
func (t Timestamp[A]) Compare(other Timestamp[A]) int {
	if t.Counter != other.Counter {
		if t.Counter < other.Counter {
			return -1
		}
		return 1
	}
	return cmp.Compare(t.Actor, other.Actor)
}

// Less reports whether t sorts strictly before other.
func (t Timestamp[A]) Less(other Timestamp[A]) bool {
	return t.Compare(other) < 0
}

// Equal reports whether t and other have the same Counter and Actor.
func (t Timestamp[A]) Equal(other Timestamp[A]) bool {
	return t.Counter == other.Counter && t.Actor == other.Actor
}

// Tick returns a new Timestamp with the same actor and Counter incremented
// by one, saturating at math.MaxUint64 rather than wrapping.
func (t Timestamp[A]) Tick() Timestamp[A] {
	c := t.Counter
	if c != math.MaxUint64 {
		c++
	}
	return Timestamp[A]{Counter: c, Actor: t.Actor}
}

// Merge returns a new Timestamp with the same actor as t and Counter set to
// max(t.Counter, other.Counter). It is used by a Replica to fold an
// incoming op's timestamp into its own local clock; the actor identity
// never changes as a result of merging.
func (t Timestamp[A]) Merge(other Timestamp[A]) Timestamp[A] {
	c := t.Counter
	if other.Counter > c {
		c = other.Counter
	}
	return Timestamp[A]{Counter: c, Actor: t.Actor}
}
