package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"blogapi/internal/adapter/out/storage"
	"blogapi/internal/service"
	"blogapi/pkg/tableinfo"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func TestCommentStorage_CreateComment(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tests := []struct {
		name    string
		req     service.CreateCommentRequest
		setup   func(m pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "root",
			req:  service.CreateCommentRequest{PostID: 1, UserID: 50, Text: "hello"},
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(regexp.QuoteMeta("INSERT INTO comments")).
					WithArgs(int64(1), (*int64)(nil), int64(50), "hello").
					WillReturnRows(commentRows().AddRow(int64(1001), int64(1), nil, int64(50), "hello", false, now, now))
			},
		},
		{
			name: "reply",
			req:  service.CreateCommentRequest{PostID: 1, ParentID: int64p(7), UserID: 50, Text: "hi"},
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(regexp.QuoteMeta("INSERT INTO comments")).
					WithArgs(int64(1), int64p(7), int64(50), "hi").
					WillReturnRows(commentRows().AddRow(int64(1002), int64(1), int64p(7), int64(50), "hi", false, now, now))
			},
		},
		{
			name: "parent removed concurrently",
			req:  service.CreateCommentRequest{PostID: 1, ParentID: int64p(7), UserID: 50, Text: "late"},
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(regexp.QuoteMeta("INSERT INTO comments")).
					WithArgs(int64(1), int64p(7), int64(50), "late").
					WillReturnError(&pgconn.PgError{Code: foreignKeyViolation, ConstraintName: tableinfo.CommentParentFKConstraint})
			},
			wantErr: service.ErrParentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newMock(t)
			tt.setup(m)

			st := NewCommentStorage(m, trmpgx.DefaultCtxGetter)
			got, err := st.CreateComment(context.Background(), tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.req.Text, got.Text)
			require.Equal(t, tt.req.ParentID == nil, got.IsRoot())
		})
	}
}

func TestCommentStorage_GetCommentByID(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tests := []struct {
		name    string
		id      int64
		setup   func(m pgxmock.PgxPoolIface)
		wantErr error
		errText string
	}{
		{
			name: "success",
			id:   5,
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(regexp.QuoteMeta("FROM comments WHERE id = $1")).
					WithArgs(int64(5)).
					WillReturnRows(commentRows().AddRow(int64(5), int64(10), nil, int64(77), "ok", true, now, now))
			},
		},
		{
			name: "not found",
			id:   404,
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(regexp.QuoteMeta("FROM comments WHERE id = $1")).
					WithArgs(int64(404)).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: service.ErrNotFound,
		},
		{
			name: "db error",
			id:   1,
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(regexp.QuoteMeta("FROM comments WHERE id = $1")).
					WithArgs(int64(1)).
					WillReturnError(errors.New("db down"))
			},
			errText: "exec select comment by id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newMock(t)
			tt.setup(m)

			st := NewCommentStorage(m, trmpgx.DefaultCtxGetter)
			got, err := st.GetCommentByID(context.Background(), tt.id)
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.errText != "":
				require.ErrorContains(t, err, tt.errText)
			default:
				require.NoError(t, err)
				require.Equal(t, tt.id, got.ID)
				require.True(t, got.IsRead)
			}
		})
	}
}

func TestCommentStorage_UpdateComment_NotOwner(t *testing.T) {
	t.Parallel()

	m := newMock(t)
	read := true
	m.ExpectQuery(regexp.QuoteMeta("UPDATE comments SET text = $1, updated_at = now(), is_read = $2 WHERE id = $3 AND user_id = $4")).
		WithArgs("edited", true, int64(3), int64(9)).
		WillReturnError(pgx.ErrNoRows)

	st := NewCommentStorage(m, trmpgx.DefaultCtxGetter)
	_, err := st.UpdateComment(context.Background(), service.UpdateCommentRequest{ID: 3, UserID: 9, Text: "edited", IsRead: &read})
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestCommentStorage_DeleteComment(t *testing.T) {
	t.Parallel()

	now := time.Now()
	m := newMock(t)
	m.ExpectQuery(regexp.QuoteMeta("DELETE FROM comments WHERE id = $1 AND user_id = $2 RETURNING")).
		WithArgs(int64(3), int64(9)).
		WillReturnRows(commentRows().AddRow(int64(3), int64(1), int64p(2), int64(9), "bye", false, now, now))

	st := NewCommentStorage(m, trmpgx.DefaultCtxGetter)
	got, err := st.DeleteComment(context.Background(), 3, 9)
	require.NoError(t, err)
	require.Equal(t, int64(2), *got.ParentID)
}

func TestCommentStorage_DeleteComments(t *testing.T) {
	t.Parallel()

	m := newMock(t)
	m.ExpectExec(regexp.QuoteMeta("DELETE FROM comments WHERE id = ANY($1)")).
		WithArgs([]int64{4, 5}).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	st := NewCommentStorage(m, trmpgx.DefaultCtxGetter)
	require.NoError(t, st.DeleteComments(context.Background(), []int64{4, 5}))

	// empty input never reaches the database
	require.NoError(t, st.DeleteComments(context.Background(), nil))
}

func TestCommentStorage_GetDescendantIDs(t *testing.T) {
	t.Parallel()

	m := newMock(t)
	m.ExpectQuery(regexp.QuoteMeta("WITH RECURSIVE tree AS")).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(2)).AddRow(int64(3)).AddRow(int64(4)))

	st := NewCommentStorage(m, trmpgx.DefaultCtxGetter)
	ids, err := st.GetDescendantIDs(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, []int64{2, 3, 4}, ids)
}

func TestCommentStorage_DeleteCommentsByPost(t *testing.T) {
	t.Parallel()

	m := newMock(t)
	m.ExpectQuery(regexp.QuoteMeta("DELETE FROM comments WHERE post_id = $1 RETURNING id")).
		WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(2)))

	st := NewCommentStorage(m, trmpgx.DefaultCtxGetter)
	ids, err := st.DeleteCommentsByPost(context.Background(), 10)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2}, ids)
}

func TestCommentStorage_ReparentReplies(t *testing.T) {
	t.Parallel()

	m := newMock(t)
	m.ExpectExec(regexp.QuoteMeta("UPDATE comments SET parent_id = $1 WHERE parent_id = $2")).
		WithArgs(int64p(1), int64(2)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	st := NewCommentStorage(m, trmpgx.DefaultCtxGetter)
	require.NoError(t, st.ReparentReplies(context.Background(), 2, int64p(1)))
}

func TestCommentStorage_GetRootComments(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tests := []struct {
		name   string
		params storage.RootCommentsParams
		sql    string
		args   []any
	}{
		{
			name:   "owner scoped",
			params: storage.RootCommentsParams{PostID: 10, UserID: int64p(7)},
			sql:    "WHERE (post_id = $1 AND parent_id IS NULL AND user_id = $2) ORDER BY created_at ASC, id ASC",
			args:   []any{int64(10), int64(7)},
		},
		{
			name:   "whole post",
			params: storage.RootCommentsParams{PostID: 10},
			sql:    "WHERE (post_id = $1 AND parent_id IS NULL) ORDER BY created_at ASC, id ASC",
			args:   []any{int64(10)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newMock(t)
			m.ExpectQuery(regexp.QuoteMeta(tt.sql)).
				WithArgs(tt.args...).
				WillReturnRows(commentRows().
					AddRow(int64(1), int64(10), nil, int64(7), "a", false, now, now).
					AddRow(int64(2), int64(10), nil, int64(7), "b", false, now, now))

			st := NewCommentStorage(m, trmpgx.DefaultCtxGetter)
			got, err := st.GetRootComments(context.Background(), tt.params)
			require.NoError(t, err)
			require.Len(t, got, 2)
			require.Equal(t, "a", got[0].Text)
		})
	}
}

func TestCommentStorage_GetReplies_QueryError(t *testing.T) {
	t.Parallel()

	m := newMock(t)
	m.ExpectQuery(regexp.QuoteMeta("WHERE parent_id = $1")).
		WithArgs(int64(3)).
		WillReturnError(errors.New("boom"))

	st := NewCommentStorage(m, trmpgx.DefaultCtxGetter)
	got, err := st.GetReplies(context.Background(), 3)
	require.ErrorContains(t, err, "exec select replies")
	require.Nil(t, got)
}
