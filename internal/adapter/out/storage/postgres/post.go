package postgres

import (
	"context"
	"fmt"

	"blogapi/internal/model"
	"blogapi/internal/service"
	"blogapi/pkg/tableinfo"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
)

var postColumns = []string{
	tableinfo.PostIDColumn,
	tableinfo.PostTitleColumn,
	tableinfo.PostBodyColumn,
	tableinfo.PostAuthorColumn,
	tableinfo.PostCreatedAtColumn,
	tableinfo.PostUpdatedAtColumn,
}

type PostStorage struct {
	db     trmpgx.Tr
	getter *trmpgx.CtxGetter
}

func NewPostStorage(db trmpgx.Tr, getter *trmpgx.CtxGetter) *PostStorage {
	return &PostStorage{db: db, getter: getter}
}

func (s *PostStorage) CreatePost(ctx context.Context, in model.Post) (model.Post, error) {
	var out model.Post

	query, args, err := psql.
		Insert(tableinfo.PostsTableName).
		Columns(
			tableinfo.PostTitleColumn,
			tableinfo.PostBodyColumn,
			tableinfo.PostAuthorColumn,
		).
		Values(in.Title, in.Body, in.Author).
		Suffix(returning(postColumns...)).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := scanPost(tr.QueryRow(ctx, query, args...), &out); err != nil {
		return out, mapError("exec insert post", err)
	}
	return out, nil
}

func (s *PostStorage) GetPostByID(ctx context.Context, postID int64) (model.Post, error) {
	var out model.Post

	query, args, err := psql.
		Select(postColumns...).
		From(tableinfo.PostsTableName).
		Where(sq.Eq{tableinfo.PostIDColumn: postID}).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := scanPost(tr.QueryRow(ctx, query, args...), &out); err != nil {
		return out, mapError("exec select post by id", err)
	}
	return out, nil
}

func (s *PostStorage) GetPosts(ctx context.Context) ([]model.Post, error) {
	query, args, err := psql.
		Select(postColumns...).
		From(tableinfo.PostsTableName).
		OrderBy(
			tableinfo.PostCreatedAtColumn+" DESC",
			tableinfo.PostIDColumn+" DESC",
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	rows, err := tr.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("exec select posts: %w", err)
	}
	defer rows.Close()

	out := make([]model.Post, 0)
	for rows.Next() {
		var p model.Post
		if err := scanPost(rows, &p); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

func (s *PostStorage) UpdatePost(ctx context.Context, in model.Post) (model.Post, error) {
	var out model.Post

	query, args, err := psql.
		Update(tableinfo.PostsTableName).
		Set(tableinfo.PostTitleColumn, in.Title).
		Set(tableinfo.PostBodyColumn, in.Body).
		Set(tableinfo.PostAuthorColumn, in.Author).
		Set(tableinfo.PostUpdatedAtColumn, sq.Expr("now()")).
		Where(sq.Eq{tableinfo.PostIDColumn: in.ID}).
		Suffix(returning(postColumns...)).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := scanPost(tr.QueryRow(ctx, query, args...), &out); err != nil {
		return out, mapError("exec update post", err)
	}
	return out, nil
}

func (s *PostStorage) DeletePost(ctx context.Context, postID int64) error {
	query, args, err := psql.
		Delete(tableinfo.PostsTableName).
		Where(sq.Eq{tableinfo.PostIDColumn: postID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	tag, err := tr.Exec(ctx, query, args...)
	if err != nil {
		return mapError("exec delete post", err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrNotFound
	}
	return nil
}

func scanPost(row scanner, p *model.Post) error {
	return row.Scan(&p.ID, &p.Title, &p.Body, &p.Author, &p.CreatedAt, &p.UpdatedAt)
}
