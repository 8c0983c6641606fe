package postgres

import (
	"context"
	"fmt"
	"strings"

	"blogapi/internal/model"
	"blogapi/pkg/tableinfo"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
)

var userColumns = []string{
	tableinfo.UserIDColumn,
	tableinfo.UserUsernameColumn,
	tableinfo.UserEmailColumn,
	tableinfo.UserPasswordHashColumn,
	tableinfo.UserCreatedAtColumn,
}

type UserStorage struct {
	db     trmpgx.Tr
	getter *trmpgx.CtxGetter
}

func NewUserStorage(db trmpgx.Tr, getter *trmpgx.CtxGetter) *UserStorage {
	return &UserStorage{db: db, getter: getter}
}

func (s *UserStorage) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	var out model.User

	query, args, err := psql.
		Insert(tableinfo.UsersTableName).
		Columns(
			tableinfo.UserUsernameColumn,
			tableinfo.UserEmailColumn,
			tableinfo.UserPasswordHashColumn,
		).
		Values(u.Username, strings.ToLower(u.Email), u.PasswordHash).
		Suffix(returning(userColumns...)).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := scanUser(tr.QueryRow(ctx, query, args...), &out); err != nil {
		return out, mapError("exec insert user", err)
	}
	return out, nil
}

func (s *UserStorage) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var out model.User

	query, args, err := psql.
		Select(userColumns...).
		From(tableinfo.UsersTableName).
		Where(sq.Eq{tableinfo.UserEmailColumn: strings.ToLower(email)}).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.db)
	if err := scanUser(tr.QueryRow(ctx, query, args...), &out); err != nil {
		return out, mapError("exec select user by email", err)
	}
	return out, nil
}

func scanUser(row scanner, u *model.User) error {
	return row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
}
