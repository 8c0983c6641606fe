package postgres

import (
	"testing"

	"blogapi/pkg/tableinfo"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func int64p(v int64) *int64 { return &v }

func commentRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		tableinfo.CommentIDColumn,
		tableinfo.CommentPostIDColumn,
		tableinfo.CommentParentIDColumn,
		tableinfo.CommentUserIDColumn,
		tableinfo.CommentTextColumn,
		tableinfo.CommentIsReadColumn,
		tableinfo.CommentCreatedAtColumn,
		tableinfo.CommentUpdatedAtColumn,
	})
}
