package gocrdt

import (
	"cmp"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_DoOp_CreatesNode(t *testing.T) {
	s := NewState[string, string, string]()
	op := NewOp(NewTimestamp("r1", 1), "root", "a", "a")
	logged := s.DoOp(op)

	assert.Nil(t, logged.OldParent)
	n, ok := s.Tree().Find("a")
	require.True(t, ok)
	assert.Equal(t, "root", n.ParentID)
}

func TestState_DoOp_SelfMoveIsCycleGuardNoOp(t *testing.T) {
	s := NewState[string, string, string]()
	s.DoOp(NewOp(NewTimestamp("r1", 1), "root", "a", "a"))

	before := s.Tree().Snapshot()
	logged := s.DoOp(NewOp(NewTimestamp("r1", 2), "a", "a-renamed", "a"))
	after := s.Tree().Snapshot()

	assert.ElementsMatch(t, before.Triples, after.Triples, "self-move must not change the tree")
	assert.NotNil(t, logged.OldParent, "cycle-guard logged op still carries the pre-image")
}

func TestState_DoOp_AncestorMoveIsCycleGuardNoOp(t *testing.T) {
	s := NewState[string, string, string]()
	s.DoOp(NewOp(NewTimestamp("r1", 1), "root", "a", "a"))
	s.DoOp(NewOp(NewTimestamp("r1", 2), "a", "c", "c"))

	before := s.Tree().Snapshot()
	// try to move a under c, its own descendant -> would create a cycle
	s.DoOp(NewOp(NewTimestamp("r1", 3), "c", "a", "a"))
	after := s.Tree().Snapshot()

	assert.ElementsMatch(t, before.Triples, after.Triples)
}

func TestState_UndoOp_RevertsCreate(t *testing.T) {
	s := NewState[string, string, string]()
	logged := s.DoOp(NewOp(NewTimestamp("r1", 1), "root", "a", "a"))
	s.UndoOp(logged)

	_, ok := s.Tree().Find("a")
	assert.False(t, ok)
}

func TestState_UndoOp_RevertsToOldParent(t *testing.T) {
	s := NewState[string, string, string]()
	s.DoOp(NewOp(NewTimestamp("r1", 1), "root", "a", "a"))
	moved := s.DoOp(NewOp(NewTimestamp("r1", 2), "b", "a2", "a"))
	s.UndoOp(moved)

	n, ok := s.Tree().Find("a")
	require.True(t, ok)
	assert.Equal(t, "root", n.ParentID)
	assert.Equal(t, "a", n.Metadata)
}

func TestState_ApplyOp_InOrderBuildsExpectedTree(t *testing.T) {
	s := NewState[string, string, string]()
	require.NoError(t, s.ApplyOp(NewOp(NewTimestamp("r1", 1), "root", "root", "root")))
	require.NoError(t, s.ApplyOp(NewOp(NewTimestamp("r1", 2), "root", "a", "a")))
	require.NoError(t, s.ApplyOp(NewOp(NewTimestamp("r1", 3), "root", "b", "b")))

	assert.Len(t, s.Log(), 3)
	assertLogDescending(t, s.Log())
}

func TestState_ApplyOp_DuplicateTimestampIsDroppedNotApplied(t *testing.T) {
	s := NewState[string, string, string]()
	require.NoError(t, s.ApplyOp(NewOp(NewTimestamp("r1", 1), "root", "a", "a")))

	err := s.ApplyOp(NewOp(NewTimestamp("r1", 1), "root", "b", "b"))
	assert.True(t, errors.Is(err, ErrDuplicateTimestamp))
	assert.Len(t, s.Log(), 1, "log must be unaffected by the dropped duplicate")
	_, ok := s.Tree().Find("b")
	assert.False(t, ok)
}

func TestState_ApplyOp_OutOfOrderSplicesIntoPosition(t *testing.T) {
	// Build in-order reference: 1, 2, 3, 5
	ref := NewState[string, string, string]()
	require.NoError(t, ref.ApplyOp(NewOp(NewTimestamp("r1", 1), "root", "a", "a")))
	require.NoError(t, ref.ApplyOp(NewOp(NewTimestamp("r1", 2), "root", "b", "b")))
	require.NoError(t, ref.ApplyOp(NewOp(NewTimestamp("r1", 3), "a", "c", "c")))
	require.NoError(t, ref.ApplyOp(NewOp(NewTimestamp("r1", 5), "b", "d", "d")))

	// Out-of-order: apply 1, 3, 5 then 2 -- matches scenario C in spirit
	oo := NewState[string, string, string]()
	require.NoError(t, oo.ApplyOp(NewOp(NewTimestamp("r1", 1), "root", "a", "a")))
	require.NoError(t, oo.ApplyOp(NewOp(NewTimestamp("r1", 3), "a", "c", "c")))
	require.NoError(t, oo.ApplyOp(NewOp(NewTimestamp("r1", 5), "b", "d", "d")))
	require.NoError(t, oo.ApplyOp(NewOp(NewTimestamp("r1", 2), "root", "b", "b")))

	assert.True(t, ref.Tree().Equal(oo.Tree()))
	assertLogDescending(t, oo.Log())
}

func TestState_TruncateLogBefore_ThresholdBelowEveryEntryIsNoop(t *testing.T) {
	s := NewState[string, string, string]()
	require.NoError(t, s.ApplyOp(NewOp(NewTimestamp("r1", 1), "root", "a", "a")))

	changed := s.TruncateLogBefore(NewTimestamp("r1", 0))
	assert.False(t, changed)
	assert.Len(t, s.Log(), 1)
}

func TestState_TruncateLogBefore_RemovesOlderEntries(t *testing.T) {
	s := NewState[string, string, string]()
	require.NoError(t, s.ApplyOp(NewOp(NewTimestamp("r1", 1), "root", "a", "a")))
	require.NoError(t, s.ApplyOp(NewOp(NewTimestamp("r1", 2), "root", "b", "b")))
	require.NoError(t, s.ApplyOp(NewOp(NewTimestamp("r1", 3), "root", "c", "c")))

	changed := s.TruncateLogBefore(NewTimestamp("r1", 3))
	assert.True(t, changed)
	assert.Len(t, s.Log(), 1)
	assert.True(t, s.Log()[0].Timestamp().Equal(NewTimestamp("r1", 3)))
}

// assertLogDescending checks the state invariant that the log is always
// kept newest-first.
func assertLogDescending[ID comparable, M comparable, A cmp.Ordered](t *testing.T, log []LoggedOp[ID, M, A]) {
	t.Helper()
	for i := 1; i < len(log); i++ {
		assert.True(t, log[i-1].Timestamp().Compare(log[i].Timestamp()) > 0, "log entry %d is not newer than entry %d", i-1, i)
	}
}
