package room

import (
	"testing"

	"github.com/legionhq/legion-server/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateAndDuplicate(t *testing.T) {
	m := NewManager(zap.NewNop())

	r, err := m.Create("table", false, "")
	require.NoError(t, err)
	assert.Equal(t, "table", r.ID)

	_, err = m.Create("table", true, "")
	assert.ErrorIs(t, err, ErrRoomExists)
}

func TestJoinSeatAssignment(t *testing.T) {
	m := NewManager(zap.NewNop())
	_, err := m.Create("table", false, "")
	require.NoError(t, err)

	p1, err := m.Join("table", "conn-1", "Alice")
	require.NoError(t, err)
	assert.Equal(t, game.SeatP1, p1.Seat)

	p2, err := m.Join("table", "conn-2", "Bob")
	require.NoError(t, err)
	assert.Equal(t, game.SeatP2, p2.Seat)

	spec, err := m.Join("table", "conn-3", "Carol")
	require.NoError(t, err)
	assert.Equal(t, game.SeatNone, spec.Seat)

	_, err = m.Join("table", "conn-4", "Alice")
	assert.ErrorIs(t, err, ErrNameTaken)

	_, err = m.Join("nowhere", "conn-5", "Dave")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestSeatReassignedAfterLeave(t *testing.T) {
	m := NewManager(zap.NewNop())
	_, err := m.Create("table", false, "")
	require.NoError(t, err)

	_, err = m.Join("table", "conn-1", "Alice")
	require.NoError(t, err)
	_, err = m.Join("table", "conn-2", "Bob")
	require.NoError(t, err)

	// p1 leaves; the next joiner takes the freed seat.
	assert.False(t, m.Leave("table", "conn-1"))
	p, err := m.Join("table", "conn-3", "Carol")
	require.NoError(t, err)
	assert.Equal(t, game.SeatP1, p.Seat)
}

func TestPassword(t *testing.T) {
	m := NewManager(zap.NewNop())
	_, err := m.Create("locked", false, "hunter2")
	require.NoError(t, err)
	_, err = m.Create("open", false, "")
	require.NoError(t, err)

	assert.NoError(t, m.CheckPassword("locked", "hunter2"))
	assert.ErrorIs(t, m.CheckPassword("locked", "wrong"), ErrWrongPassword)
	assert.ErrorIs(t, m.CheckPassword("locked", ""), ErrWrongPassword)
	assert.NoError(t, m.CheckPassword("open", "anything"))
	assert.ErrorIs(t, m.CheckPassword("nowhere", ""), ErrRoomNotFound)
}

func TestSwitchSides(t *testing.T) {
	m := NewManager(zap.NewNop())
	_, err := m.Create("table", false, "")
	require.NoError(t, err)
	_, err = m.Join("table", "conn-1", "Alice")
	require.NoError(t, err)
	_, err = m.Join("table", "conn-2", "Bob")
	require.NoError(t, err)

	require.True(t, m.SwitchSides("table"))
	alice, _ := m.Member("table", "conn-1")
	bob, _ := m.Member("table", "conn-2")
	assert.Equal(t, game.SeatP2, alice.Seat)
	assert.Equal(t, game.SeatP1, bob.Seat)

	assert.False(t, m.SwitchSides("nowhere"))
}

func TestLeaveEmptiesRoom(t *testing.T) {
	m := NewManager(zap.NewNop())
	_, err := m.Create("table", true, "")
	require.NoError(t, err)
	_, err = m.Join("table", "conn-1", "Alice")
	require.NoError(t, err)
	_, err = m.Join("table", "conn-2", "Bob")
	require.NoError(t, err)

	assert.False(t, m.Leave("table", "conn-1"))
	assert.True(t, m.Leave("table", "conn-2"))

	_, ok := m.Get("table")
	assert.False(t, ok)
}

func TestSnapshots(t *testing.T) {
	m := NewManager(zap.NewNop())
	_, err := m.Create("beta", true, "pw")
	require.NoError(t, err)
	_, err = m.Create("alpha", false, "")
	require.NoError(t, err)
	_, err = m.Join("beta", "conn-1", "Bob")
	require.NoError(t, err)
	_, err = m.Join("beta", "conn-2", "Alice")
	require.NoError(t, err)

	all := m.SnapshotAll()
	require.Len(t, all, 2)
	assert.Equal(t, "alpha", all[0].ID)
	assert.Equal(t, "beta", all[1].ID)
	assert.True(t, all[1].Locked)
	assert.True(t, all[1].Sandbox)

	snap, ok := m.SnapshotRoom("beta")
	require.True(t, ok)
	require.Len(t, snap.Players, 2)
	// Sorted by name.
	assert.Equal(t, "Alice", snap.Players[0].Name)
	assert.Equal(t, "Bob", snap.Players[1].Name)

	_, ok = m.SnapshotRoom("nowhere")
	assert.False(t, ok)
}
