package inmemory

import (
	"context"
	"testing"

	"blogapi/internal/model"

	"github.com/stretchr/testify/require"
)

func TestNotificationStorage(t *testing.T) {
	t.Parallel()

	st := NewNotificationStorage()
	ctx := context.Background()

	n1, err := st.CreateNotification(ctx, model.Notification{RecipientID: 1, SenderID: 2, CommentID: 10, Message: "hi"})
	require.NoError(t, err)
	_, err = st.CreateNotification(ctx, model.Notification{RecipientID: 1, SenderID: 3, CommentID: 11, Message: "yo"})
	require.NoError(t, err)
	_, err = st.CreateNotification(ctx, model.Notification{RecipientID: 4, SenderID: 1, CommentID: 12, Message: "hey"})
	require.NoError(t, err)

	updated, err := st.UpdateNotificationMessage(ctx, 10, "edited: hello")
	require.NoError(t, err)
	require.Equal(t, int64(1), updated)

	updated, err = st.UpdateNotificationMessage(ctx, 99, "edited: nobody")
	require.NoError(t, err)
	require.Zero(t, updated)

	list, err := st.GetNotificationsByRecipient(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "yo", list[0].Message)
	require.Equal(t, n1.ID, list[1].ID)
	require.Equal(t, "edited: hello", list[1].Message)

	moved, err := st.UpdateNotificationRecipient(ctx, []int64{11}, 4)
	require.NoError(t, err)
	require.Equal(t, int64(1), moved)

	list, err = st.GetNotificationsByRecipient(ctx, 4)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, int64(11), list[0].CommentID)

	deleted, err := st.DeleteNotificationsByComments(ctx, []int64{10, 12})
	require.NoError(t, err)
	require.Equal(t, int64(2), deleted)

	list, err = st.GetNotificationsByRecipient(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, list)

	list, err = st.GetNotificationsByRecipient(ctx, 4)
	require.NoError(t, err)
	require.Len(t, list, 1)
}
