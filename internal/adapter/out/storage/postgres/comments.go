package postgres

import (
	"context"
	"fmt"

	"blogapi/internal/adapter/out/storage"
	"blogapi/internal/model"
	"blogapi/internal/service"
	"blogapi/pkg/tableinfo"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
)

var commentColumns = []string{
	tableinfo.CommentIDColumn,
	tableinfo.CommentPostIDColumn,
	tableinfo.CommentParentIDColumn,
	tableinfo.CommentUserIDColumn,
	tableinfo.CommentTextColumn,
	tableinfo.CommentIsReadColumn,
	tableinfo.CommentCreatedAtColumn,
	tableinfo.CommentUpdatedAtColumn,
}

// descendantsQuery walks the reply tree below $1, excluding $1 itself.
var descendantsQuery = fmt.Sprintf(`WITH RECURSIVE tree AS (
	SELECT %[1]s FROM %[2]s WHERE %[3]s = $1
	UNION ALL
	SELECT c.%[1]s FROM %[2]s c JOIN tree t ON c.%[3]s = t.%[1]s
)
SELECT %[1]s FROM tree`,
	tableinfo.CommentIDColumn,
	tableinfo.CommentsTableName,
	tableinfo.CommentParentIDColumn,
)

type CommentStorage struct {
	db     trmpgx.Tr
	getter *trmpgx.CtxGetter
}

func NewCommentStorage(db trmpgx.Tr, getter *trmpgx.CtxGetter) *CommentStorage {
	return &CommentStorage{db: db, getter: getter}
}

func (s *CommentStorage) CreateComment(ctx context.Context, req service.CreateCommentRequest) (model.Comment, error) {
	var out model.Comment

	query, args, err := psql.
		Insert(tableinfo.CommentsTableName).
		Columns(
			tableinfo.CommentPostIDColumn,
			tableinfo.CommentParentIDColumn,
			tableinfo.CommentUserIDColumn,
			tableinfo.CommentTextColumn,
		).
		Values(req.PostID, req.ParentID, req.UserID, req.Text).
		Suffix(returning(commentColumns...)).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := scanComment(tr.QueryRow(ctx, query, args...), &out); err != nil {
		return out, mapError("exec insert comment", err)
	}
	return out, nil
}

func (s *CommentStorage) GetCommentByID(ctx context.Context, commentID int64) (model.Comment, error) {
	var out model.Comment

	query, args, err := psql.
		Select(commentColumns...).
		From(tableinfo.CommentsTableName).
		Where(sq.Eq{tableinfo.CommentIDColumn: commentID}).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := scanComment(tr.QueryRow(ctx, query, args...), &out); err != nil {
		return out, mapError("exec select comment by id", err)
	}
	return out, nil
}

// UpdateComment only touches rows owned by req.UserID; any other row reads as not found.
func (s *CommentStorage) UpdateComment(ctx context.Context, req service.UpdateCommentRequest) (model.Comment, error) {
	var out model.Comment

	b := psql.
		Update(tableinfo.CommentsTableName).
		Set(tableinfo.CommentTextColumn, req.Text).
		Set(tableinfo.CommentUpdatedAtColumn, sq.Expr("now()"))
	if req.IsRead != nil {
		b = b.Set(tableinfo.CommentIsReadColumn, *req.IsRead)
	}
	query, args, err := b.
		Where(sq.Eq{
			tableinfo.CommentIDColumn:     req.ID,
			tableinfo.CommentUserIDColumn: req.UserID,
		}).
		Suffix(returning(commentColumns...)).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := scanComment(tr.QueryRow(ctx, query, args...), &out); err != nil {
		return out, mapError("exec update comment", err)
	}
	return out, nil
}

func (s *CommentStorage) DeleteComment(ctx context.Context, commentID, userID int64) (model.Comment, error) {
	var out model.Comment

	query, args, err := psql.
		Delete(tableinfo.CommentsTableName).
		Where(sq.Eq{
			tableinfo.CommentIDColumn:     commentID,
			tableinfo.CommentUserIDColumn: userID,
		}).
		Suffix(returning(commentColumns...)).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := scanComment(tr.QueryRow(ctx, query, args...), &out); err != nil {
		return out, mapError("exec delete comment", err)
	}
	return out, nil
}

func (s *CommentStorage) DeleteComments(ctx context.Context, commentIDs []int64) error {
	if len(commentIDs) == 0 {
		return nil
	}

	query, args, err := psql.
		Delete(tableinfo.CommentsTableName).
		Where(sq.Expr(tableinfo.CommentIDColumn+" = ANY(?)", commentIDs)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if _, err := tr.Exec(ctx, query, args...); err != nil {
		return mapError("exec delete comments", err)
	}
	return nil
}

func (s *CommentStorage) DeleteCommentsByPost(ctx context.Context, postID int64) ([]int64, error) {
	query, args, err := psql.
		Delete(tableinfo.CommentsTableName).
		Where(sq.Eq{tableinfo.CommentPostIDColumn: postID}).
		Suffix(returning(tableinfo.CommentIDColumn)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	return s.queryIDs(ctx, "exec delete comments by post", query, args...)
}

func (s *CommentStorage) GetDescendantIDs(ctx context.Context, commentID int64) ([]int64, error) {
	return s.queryIDs(ctx, "exec select descendants", descendantsQuery, commentID)
}

func (s *CommentStorage) ReparentReplies(ctx context.Context, fromParentID int64, toParentID *int64) error {
	query, args, err := psql.
		Update(tableinfo.CommentsTableName).
		Set(tableinfo.CommentParentIDColumn, toParentID).
		Where(sq.Eq{tableinfo.CommentParentIDColumn: fromParentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if _, err := tr.Exec(ctx, query, args...); err != nil {
		return mapError("exec reparent replies", err)
	}
	return nil
}

func (s *CommentStorage) GetRootComments(ctx context.Context, p storage.RootCommentsParams) ([]model.Comment, error) {
	where := sq.And{
		sq.Eq{tableinfo.CommentPostIDColumn: p.PostID},
		sq.Eq{tableinfo.CommentParentIDColumn: nil},
	}
	if p.UserID != nil {
		where = append(where, sq.Eq{tableinfo.CommentUserIDColumn: *p.UserID})
	}

	query, args, err := psql.
		Select(commentColumns...).
		From(tableinfo.CommentsTableName).
		Where(where).
		OrderBy(
			tableinfo.CommentCreatedAtColumn+" ASC",
			tableinfo.CommentIDColumn+" ASC",
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	return s.queryComments(ctx, "exec select root comments", query, args...)
}

func (s *CommentStorage) GetReplies(ctx context.Context, parentID int64) ([]model.Comment, error) {
	query, args, err := psql.
		Select(commentColumns...).
		From(tableinfo.CommentsTableName).
		Where(sq.Eq{tableinfo.CommentParentIDColumn: parentID}).
		OrderBy(
			tableinfo.CommentCreatedAtColumn+" ASC",
			tableinfo.CommentIDColumn+" ASC",
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	return s.queryComments(ctx, "exec select replies", query, args...)
}

func (s *CommentStorage) queryComments(ctx context.Context, op, query string, args ...any) ([]model.Comment, error) {
	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	rows, err := tr.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]model.Comment, 0)
	for rows.Next() {
		var c model.Comment
		if err := scanComment(rows, &c); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

func (s *CommentStorage) queryIDs(ctx context.Context, op, query string, args ...any) ([]int64, error) {
	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	rows, err := tr.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return ids, nil
}

func scanComment(row scanner, c *model.Comment) error {
	return row.Scan(
		&c.ID,
		&c.PostID,
		&c.ParentID,
		&c.UserID,
		&c.Text,
		&c.IsRead,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
}
