package chat_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskmind/go-task-client/chat"
)

func TestReconcile(t *testing.T) {
	history := []chat.Message{
		{ID: 1, Role: chat.RoleUser, Content: "hello"},
		{ID: 2, Role: chat.RoleAssistant, Content: "hi"},
		{ID: -1, Role: chat.RoleUser, Content: "optimistic"},
	}
	confirmed := []chat.Message{
		{ID: 3, Role: chat.RoleUser, Content: "optimistic"},
		{ID: 4, Role: chat.RoleAssistant, Content: "reply"},
	}

	t.Run("replaces the temporary entry with the confirmed pair", func(t *testing.T) {
		next := chat.Reconcile(history, -1, confirmed)
		require.Len(t, next, 4)
		require.Equal(t, []int64{1, 2, 3, 4}, ids(next))
	})

	t.Run("unknown temp id just appends", func(t *testing.T) {
		next := chat.Reconcile(history, -99, confirmed)
		require.Len(t, next, 5)
	})

	t.Run("input slice is not mutated", func(t *testing.T) {
		_ = chat.Reconcile(history, -1, confirmed)
		require.Equal(t, []int64{1, 2, -1}, ids(history))
	})
}

func TestRollback(t *testing.T) {
	history := []chat.Message{
		{ID: 1, Role: chat.RoleUser, Content: "hello"},
		{ID: -1, Role: chat.RoleUser, Content: "optimistic"},
	}

	t.Run("drops the temporary entry", func(t *testing.T) {
		next := chat.Rollback(history, -1)
		require.Equal(t, []int64{1}, ids(next))
	})

	t.Run("unknown temp id is a no-op", func(t *testing.T) {
		next := chat.Rollback(history, -5)
		require.Equal(t, []int64{1, -1}, ids(next))
	})
}

func ids(messages []chat.Message) []int64 {
	out := make([]int64, 0, len(messages))
	for _, m := range messages {
		out = append(out, m.ID)
	}
	return out
}
