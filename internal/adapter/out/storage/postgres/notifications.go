package postgres

import (
	"context"
	"fmt"

	"blogapi/internal/model"
	"blogapi/pkg/tableinfo"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
)

var notificationColumns = []string{
	tableinfo.NotificationIDColumn,
	tableinfo.NotificationRecipientIDColumn,
	tableinfo.NotificationSenderIDColumn,
	tableinfo.NotificationCommentIDColumn,
	tableinfo.NotificationMessageColumn,
	tableinfo.NotificationCreatedAtColumn,
}

type NotificationStorage struct {
	db     trmpgx.Tr
	getter *trmpgx.CtxGetter
}

func NewNotificationStorage(db trmpgx.Tr, getter *trmpgx.CtxGetter) *NotificationStorage {
	return &NotificationStorage{db: db, getter: getter}
}

func (s *NotificationStorage) CreateNotification(ctx context.Context, n model.Notification) (model.Notification, error) {
	var out model.Notification

	query, args, err := psql.
		Insert(tableinfo.NotificationsTableName).
		Columns(
			tableinfo.NotificationRecipientIDColumn,
			tableinfo.NotificationSenderIDColumn,
			tableinfo.NotificationCommentIDColumn,
			tableinfo.NotificationMessageColumn,
		).
		Values(n.RecipientID, n.SenderID, n.CommentID, n.Message).
		Suffix(returning(notificationColumns...)).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := scanNotification(tr.QueryRow(ctx, query, args...), &out); err != nil {
		return out, mapError("exec insert notification", err)
	}
	return out, nil
}

// UpdateNotificationMessage rewrites the notification linked to commentID and
// reports how many rows changed.
func (s *NotificationStorage) UpdateNotificationMessage(ctx context.Context, commentID int64, message string) (int64, error) {
	query, args, err := psql.
		Update(tableinfo.NotificationsTableName).
		Set(tableinfo.NotificationMessageColumn, message).
		Where(sq.Eq{tableinfo.NotificationCommentIDColumn: commentID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	tag, err := tr.Exec(ctx, query, args...)
	if err != nil {
		return 0, mapError("exec update notification", err)
	}
	return tag.RowsAffected(), nil
}

// UpdateNotificationRecipient re-addresses the notifications produced by
// commentIDs.
func (s *NotificationStorage) UpdateNotificationRecipient(ctx context.Context, commentIDs []int64, recipientID int64) (int64, error) {
	if len(commentIDs) == 0 {
		return 0, nil
	}

	query, args, err := psql.
		Update(tableinfo.NotificationsTableName).
		Set(tableinfo.NotificationRecipientIDColumn, recipientID).
		Where(sq.Expr(tableinfo.NotificationCommentIDColumn+" = ANY(?)", commentIDs)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	tag, err := tr.Exec(ctx, query, args...)
	if err != nil {
		return 0, mapError("exec update notification recipient", err)
	}
	return tag.RowsAffected(), nil
}

func (s *NotificationStorage) DeleteNotificationsByComments(ctx context.Context, commentIDs []int64) (int64, error) {
	if len(commentIDs) == 0 {
		return 0, nil
	}

	query, args, err := psql.
		Delete(tableinfo.NotificationsTableName).
		Where(sq.Expr(tableinfo.NotificationCommentIDColumn+" = ANY(?)", commentIDs)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	tag, err := tr.Exec(ctx, query, args...)
	if err != nil {
		return 0, mapError("exec delete notifications", err)
	}
	return tag.RowsAffected(), nil
}

func (s *NotificationStorage) GetNotificationsByRecipient(ctx context.Context, recipientID int64) ([]model.Notification, error) {
	query, args, err := psql.
		Select(notificationColumns...).
		From(tableinfo.NotificationsTableName).
		Where(sq.Eq{tableinfo.NotificationRecipientIDColumn: recipientID}).
		OrderBy(
			tableinfo.NotificationCreatedAtColumn+" DESC",
			tableinfo.NotificationIDColumn+" DESC",
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	rows, err := tr.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("exec select notifications: %w", err)
	}
	defer rows.Close()

	out := make([]model.Notification, 0)
	for rows.Next() {
		var n model.Notification
		if err := scanNotification(rows, &n); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

func scanNotification(row scanner, n *model.Notification) error {
	return row.Scan(&n.ID, &n.RecipientID, &n.SenderID, &n.CommentID, &n.Message, &n.CreatedAt)
}
