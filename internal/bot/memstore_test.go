package bot

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func seedMemStore(t *testing.T, m *MemStore, userID string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		turn := Turn{UserID: userID, Sender: SenderUser, Kind: KindText, Text: fmt.Sprintf("msg-%d", i)}
		require.NoError(t, m.Append(context.Background(), &turn))
	}
}

func TestMemStore_AppendAssignsIDAndTimestamp(t *testing.T) {
	m := NewMemStore()
	turn := Turn{UserID: "u", Sender: SenderUser, Kind: KindText, Text: "hi"}
	require.NoError(t, m.Append(context.Background(), &turn))
	require.Equal(t, int64(1), turn.ID)
	require.False(t, turn.CreatedAt.IsZero())
}

func TestMemStore_ListByUser_ChronologicalAndFiltered(t *testing.T) {
	m := NewMemStore()
	seedMemStore(t, m, "a", 3)
	seedMemStore(t, m, "b", 2)

	turns, err := m.ListByUser(context.Background(), "a", 0)
	require.NoError(t, err)
	require.Len(t, turns, 3)
	require.Equal(t, "msg-0", turns[0].Text)
	require.Equal(t, "msg-2", turns[2].Text)
	for _, turn := range turns {
		require.Equal(t, "a", turn.UserID)
	}
}

func TestMemStore_ListByUser_LimitKeepsMostRecent(t *testing.T) {
	m := NewMemStore()
	seedMemStore(t, m, "a", 5)

	turns, err := m.ListByUser(context.Background(), "a", 2)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	// Still oldest-first, but only the two newest survive.
	require.Equal(t, "msg-3", turns[0].Text)
	require.Equal(t, "msg-4", turns[1].Text)
}

func TestMemStore_TiesBrokenByInsertionOrder(t *testing.T) {
	m := NewMemStore()
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return fixed }
	seedMemStore(t, m, "a", 3)

	turns, err := m.ListByUser(context.Background(), "a", 0)
	require.NoError(t, err)
	require.Equal(t, []string{"msg-0", "msg-1", "msg-2"},
		[]string{turns[0].Text, turns[1].Text, turns[2].Text})
}

func TestMemStore_ListRecent_NewestFirst(t *testing.T) {
	m := NewMemStore()
	seedMemStore(t, m, "a", 2)
	seedMemStore(t, m, "b", 1)

	turns, err := m.ListRecent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	require.Equal(t, "b", turns[0].UserID)
	require.Equal(t, "msg-1", turns[1].Text)
}

func TestMemStore_ListUsers_MostRecentlyActiveFirst(t *testing.T) {
	m := NewMemStore()
	seedMemStore(t, m, "a", 1)
	seedMemStore(t, m, "b", 1)
	seedMemStore(t, m, "a", 1)

	users, err := m.ListUsers(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, users)
}
